package bankregistry

import "pennywise/sms-ledger/internal/logging"

// builtinBanks is the fixed table of banks and wallets the pipeline knows
// out of the box. Sender ids are the DLT headers carriers attach; the
// two-letter route prefix varies by circle, so the common variants are all
// listed. User YAML files can extend or shadow this table.
var builtinBanks = []struct {
	config   BankConfig
	patterns *PatternSet
}{
	{
		config: BankConfig{
			BankName:    "hdfc",
			DisplayName: "HDFC Bank",
			SenderIDs:   []string{"VM-HDFCBK", "AD-HDFCBK", "VK-HDFCBK", "HDFCBK", "HDFCBN"},
		},
		patterns: &PatternSet{
			// "You've spent Rs.X On HDFC Bank CREDIT Card xx1234 At MERCHANT On ..."
			Merchant:        `(?i)\bAt\s+([A-Za-z0-9][A-Za-z0-9 .&'\-]*?)\s+On\b`,
			ExtraDebitVerbs: []string{"spent"},
		},
	},
	{
		config: BankConfig{
			BankName:    "icici",
			DisplayName: "ICICI Bank",
			SenderIDs:   []string{"VM-ICICIB", "AD-ICICIB", "VK-ICICIB", "ICICIB"},
		},
		patterns: &PatternSet{
			// ICICI card alerts report the remaining limit, not the balance.
			Balance: `(?i)Avl\s*Lmt\s*:?\s*(?:INR|Rs\.?|₹)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`,
		},
	},
	{
		config: BankConfig{
			BankName:    "sbi",
			DisplayName: "State Bank of India",
			SenderIDs:   []string{"VM-SBIINB", "BZ-SBIINB", "AD-SBIINB", "SBIINB", "SBIPSG", "SBIUPI"},
		},
	},
	{
		config: BankConfig{
			BankName:    "axis",
			DisplayName: "Axis Bank",
			SenderIDs:   []string{"VM-AXISBK", "AD-AXISBK", "AXISBK"},
		},
		patterns: &PatternSet{
			// "Spent Card no. XX1234 INR ..."
			Amount: `(?i)(?:INR|Rs\.?|₹)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`,
		},
	},
	{
		config: BankConfig{
			BankName:    "kotak",
			DisplayName: "Kotak Mahindra Bank",
			SenderIDs:   []string{"VM-KOTAKB", "AD-KOTAKB", "KOTAKB"},
		},
	},
	{
		config: BankConfig{
			BankName:    "federal",
			DisplayName: "Federal Bank",
			SenderIDs:   []string{"VM-FEDBNK", "AD-FEDBNK", "FEDBNK"},
		},
		patterns: &PatternSet{
			// "... to VPA merchant@bank - (UPI Ref No ...)" and the
			// "and VPA x@y credited" phrasing for outgoing UPI.
			Merchant: `(?i)(?:to|and)\s+VPA\s+([A-Za-z0-9._\-]+@[A-Za-z0-9]+)`,
		},
	},
	{
		config: BankConfig{
			BankName:    "citi",
			DisplayName: "Citibank",
			SenderIDs:   []string{"VM-CITIBK", "AD-CITIBK", "CITIBK"},
		},
	},
	{
		config: BankConfig{
			BankName:    "pnb",
			DisplayName: "Punjab National Bank",
			SenderIDs:   []string{"VM-PNBSMS", "AD-PNBSMS", "PNBSMS"},
		},
	},
	{
		config: BankConfig{
			BankName:    "bob",
			DisplayName: "Bank of Baroda",
			SenderIDs:   []string{"VM-BOBTXN", "AD-BOBTXN", "BOBTXN"},
		},
	},
	{
		config: BankConfig{
			BankName:    "yes",
			DisplayName: "Yes Bank",
			SenderIDs:   []string{"VM-YESBNK", "AD-YESBNK", "YESBNK"},
		},
	},
	{
		config: BankConfig{
			BankName:    "idfc",
			DisplayName: "IDFC First Bank",
			SenderIDs:   []string{"VM-IDFCFB", "AD-IDFCFB", "IDFCFB"},
		},
	},
	{
		config: BankConfig{
			BankName:    "indusind",
			DisplayName: "IndusInd Bank",
			SenderIDs:   []string{"VM-INDUSB", "AD-INDUSB", "INDUSB"},
		},
	},
	{
		config: BankConfig{
			BankName:    "paytm",
			DisplayName: "Paytm Payments Bank",
			SenderIDs:   []string{"PAYTM", "VM-PAYTM", "AD-PAYTM", "IPAYTM", "VM-IPAYTM"},
		},
		patterns: &PatternSet{
			Balance: `(?i)Wallet\s*Bal(?:ance)?\s*(?:is|:|-)?\s*(?:₹|Rs\.?|INR)\s*([0-9][0-9,]*(?:\.[0-9]{1,2})?)`,
		},
	},
	{
		config: BankConfig{
			BankName:    "phonepe",
			DisplayName: "PhonePe",
			SenderIDs:   []string{"PHONPE", "VM-PHONPE", "AD-PHONPE"},
		},
	},
	{
		config: BankConfig{
			BankName:    "amazonpay",
			DisplayName: "Amazon Pay",
			SenderIDs:   []string{"AMZPAY", "VM-AMZPAY", "AD-AMZPAY"},
		},
	},
}

// NewBuiltin creates a registry pre-loaded with the built-in bank table.
func NewBuiltin(logger logging.Logger) *Registry {
	r := New(logger)
	for _, b := range builtinBanks {
		// Built-in patterns are compile-checked by tests; an error here
		// is a programming bug, not user input.
		if err := r.Register(b.config, b.patterns); err != nil {
			r.logger.WithError(err).Fatalf("built-in bank table is invalid: %v", err)
		}
	}
	return r
}
