package msgsource

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"

	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
	"pennywise/sms-ledger/internal/parsererror"
	"pennywise/sms-ledger/internal/xmlutils"

	"gopkg.in/xmlpath.v2"
)

var (
	smsPath     = xmlpath.MustCompile(xmlutils.XPathSms)
	addressPath = xmlpath.MustCompile(xmlutils.XPathSmsAddress)
	datePath    = xmlpath.MustCompile(xmlutils.XPathSmsDate)
	bodyPath    = xmlpath.MustCompile(xmlutils.XPathSmsBody)
)

// ReadXMLBackup loads messages from an SMS Backup & Restore export.
// Backup files carry no stable row id, so each message gets a
// deterministic id derived from its sender, timestamp and body; the
// same backup imported twice yields identical ids and the identity
// check drops the repeats.
func ReadXMLBackup(path string, logger logging.Logger) ([]models.RawMessage, error) {
	root, err := xmlutils.LoadXMLFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to open backup file: %w", err)
		}
		return nil, &parsererror.InvalidSourceError{
			FilePath:       path,
			ExpectedFormat: "SMS Backup & Restore XML",
			Msg:            err.Error(),
		}
	}

	var messages []models.RawMessage
	skipped := 0
	iter := smsPath.Iter(root)
	for iter.Next() {
		node := iter.Node()
		sender := xmlutils.AttrString(node, addressPath)
		body := xmlutils.AttrString(node, bodyPath)
		dateStr := xmlutils.AttrString(node, datePath)
		if body == "" || sender == "" {
			skipped++
			continue
		}
		timestamp, err := strconv.ParseInt(dateStr, 10, 64)
		if err != nil {
			skipped++
			continue
		}
		messages = append(messages, models.RawMessage{
			ID:            backupMessageID(sender, dateStr, body),
			SenderAddress: sender,
			Body:          body,
			Timestamp:     timestamp,
		})
	}

	logger.Info("Loaded messages from XML backup",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(messages)},
		logging.Field{Key: "skipped", Value: skipped})
	return messages, nil
}

func backupMessageID(sender, date, body string) string {
	sum := sha256.Sum256([]byte(sender + "|" + date + "|" + body))
	return "xml-" + hex.EncodeToString(sum[:8])
}
