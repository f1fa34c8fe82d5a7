package bankregistry

import (
	"fmt"
	"os"
	"path/filepath"

	"pennywise/sms-ledger/internal/logging"

	"gopkg.in/yaml.v3"
)

// BankFile is the YAML document format for user-supplied banks:
//
//	banks:
//	  - bank_name: mybank
//	    display_name: My Bank
//	    sender_ids: [VM-MYBANK]
//	    patterns:
//	      merchant: '...'
type BankFile struct {
	Banks []BankFileEntry `yaml:"banks"`
}

// BankFileEntry is one bank record in a bank YAML file.
type BankFileEntry struct {
	BankConfig `yaml:",inline"`
	Patterns   *PatternSet `yaml:"patterns,omitempty"`
}

// FindBanksFile looks for a banks YAML file in the standard locations:
// the given path as-is, ./config/, and ~/.config/sms-ledger/.
func FindBanksFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "sms-ledger", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadBanksFile reads a bank YAML file and registers its banks into the
// registry. Later registrations shadow earlier sender-id claims, so a user
// file loaded after the built-in table overrides it.
func (r *Registry) LoadBanksFile(filename string) (int, error) {
	filePath, err := FindBanksFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn("Banks file not found, using built-in table only",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return 0, nil
		}
		return 0, fmt.Errorf("error resolving banks file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("error reading banks file: %w", err)
	}

	var bankFile BankFile
	if err := yaml.Unmarshal(data, &bankFile); err != nil {
		return 0, fmt.Errorf("error parsing banks file %s: %w", filePath, err)
	}

	for _, entry := range bankFile.Banks {
		if err := r.Register(entry.BankConfig, entry.Patterns); err != nil {
			return 0, fmt.Errorf("banks file %s: %w", filePath, err)
		}
	}

	r.logger.Debug("Loaded banks from file",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(bankFile.Banks)})
	return len(bankFile.Banks), nil
}
