// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

// XPath expressions for the SMS Backup & Restore export format
const (
	XPathSms        = "/smses/sms"
	XPathSmsAddress = "@address"
	XPathSmsDate    = "@date"
	XPathSmsBody    = "@body"
	XPathSmsType    = "@type"
)
