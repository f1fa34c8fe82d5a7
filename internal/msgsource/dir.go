package msgsource

import (
	"fmt"
	"sort"

	"pennywise/sms-ledger/internal/fileutils"
	"pennywise/sms-ledger/internal/logging"
	"pennywise/sms-ledger/internal/models"
)

// ReadDirectory loads every .csv and .xml export in a directory and
// merges them into one chronologically ordered batch. Messages repeated
// across files survive here; the pipeline's identity check drops them.
func ReadDirectory(dirPath string, logger logging.Logger) ([]models.RawMessage, error) {
	csvFiles, err := fileutils.ListFilesWithExtension(dirPath, ".csv")
	if err != nil {
		return nil, fmt.Errorf("failed to list CSV exports: %w", err)
	}
	xmlFiles, err := fileutils.ListFilesWithExtension(dirPath, ".xml")
	if err != nil {
		return nil, fmt.Errorf("failed to list XML exports: %w", err)
	}
	if len(csvFiles)+len(xmlFiles) == 0 {
		return nil, fmt.Errorf("no .csv or .xml exports found in %s", dirPath)
	}

	var merged []models.RawMessage
	for _, path := range csvFiles {
		messages, err := ReadCSV(path, logger)
		if err != nil {
			return nil, err
		}
		merged = append(merged, messages...)
	}
	for _, path := range xmlFiles {
		messages, err := ReadXMLBackup(path, logger)
		if err != nil {
			return nil, err
		}
		merged = append(merged, messages...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})

	logger.Info("Merged message exports",
		logging.Field{Key: logging.FieldFile, Value: dirPath},
		logging.Field{Key: logging.FieldCount, Value: len(merged)},
		logging.Field{Key: "files", Value: len(csvFiles) + len(xmlFiles)})
	return merged, nil
}
