package brcode

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Top-level tags of a Merchant Presented Mode payload.
const (
	TagPayloadFormat    = "00"
	TagMerchantAccount  = "26"
	TagCategoryCode     = "52"
	TagCurrency         = "53"
	TagAmount           = "54"
	TagCountryCode      = "58"
	TagMerchantName     = "59"
	TagMerchantCity     = "60"
	TagAdditionalData   = "62"
	TagCRC              = "63"
	tagGUI              = "00"
	tagPixKey           = "01"
	tagReferenceLabel   = "05"
	payloadFormat       = "01"
	pixGUI              = "br.gov.bcb.pix"
	categoryCode        = "0000"
	currencyBRL         = "986"
	countryBR           = "BR"
	crcPlaceholder      = TagCRC + "04"
	crcDigits           = 4
	amountFractionDigit = 2
	maxAmountLen        = 13
	maxAmountIntDigits  = maxAmountLen - 1 - amountFractionDigit
)

const (
	DefaultCity = "SAO PAULO"
	DefaultTxID = "***"
)

// Charge holds the inputs of a static Pix payload.
type Charge struct {
	Key    string
	Name   string
	City   string
	Amount decimal.Decimal
	TxID   string
}

// BuildStaticPayload assembles the BR Code for c, checksum included.
// Key is emitted verbatim; name and city are normalized before their lengths are taken.
func BuildStaticPayload(c Charge) (string, error) {
	if c.Key == "" {
		return "", &EncodingError{Tag: TagMerchantAccount, Err: ErrEmptyKey}
	}

	name := Normalize(c.Name, maxNameLen)
	if name == "" {
		return "", &EncodingError{Tag: TagMerchantName, Err: ErrEmptyName}
	}

	city := Normalize(c.City, maxCityLen)
	if city == "" {
		city = DefaultCity
	}

	txid := c.TxID
	if strings.TrimSpace(txid) == "" {
		txid = DefaultTxID
	}

	amount, err := FormatAmount(c.Amount)
	if err != nil {
		return "", err
	}

	account, err := encodeFields(
		field{tag: tagGUI, value: pixGUI},
		field{tag: tagPixKey, value: c.Key},
	)
	if err != nil {
		return "", err
	}

	additional, err := encodeFields(field{tag: tagReferenceLabel, value: txid})
	if err != nil {
		return "", err
	}

	body, err := encodeFields(
		field{tag: TagPayloadFormat, value: payloadFormat},
		field{tag: TagMerchantAccount, value: account},
		field{tag: TagCategoryCode, value: categoryCode},
		field{tag: TagCurrency, value: currencyBRL},
		field{tag: TagAmount, value: amount},
		field{tag: TagCountryCode, value: countryBR},
		field{tag: TagMerchantName, value: name},
		field{tag: TagMerchantCity, value: city},
		field{tag: TagAdditionalData, value: additional},
	)
	if err != nil {
		return "", err
	}

	body += crcPlaceholder
	return body + crcHex(CRC16([]byte(body))), nil
}

// FormatAmount renders d with exactly two fractional digits and '.' as separator,
// rounding half away from zero. The result fits the 13 characters of tag 54, so
// the largest accepted amount is 9999999999.99.
func FormatAmount(d decimal.Decimal) (string, error) {
	if d.IsNegative() {
		return "", &EncodingError{Tag: TagAmount, Err: ErrNegativeAmount}
	}
	if d.IsZero() {
		return decimal.Zero.StringFixed(amountFractionDigit), nil
	}

	// Bound the magnitude before StringFixed, whose rescaling is linear in the exponent.
	magnitude := int64(d.Exponent()) + int64(d.NumDigits())
	if magnitude > maxAmountIntDigits {
		return "", &EncodingError{Tag: TagAmount, Err: ErrValueTooLong}
	}
	if magnitude < -amountFractionDigit {
		return decimal.Zero.StringFixed(amountFractionDigit), nil
	}

	s := d.StringFixed(amountFractionDigit)
	if len(s) > maxAmountLen {
		return "", &EncodingError{Tag: TagAmount, Err: ErrValueTooLong}
	}
	return s, nil
}

// ValidChecksum reports whether the last four characters of payload are the
// CRC16 of everything before them.
func ValidChecksum(payload string) bool {
	if len(payload) < len(crcPlaceholder)+crcDigits {
		return false
	}
	body := payload[:len(payload)-crcDigits]
	if !strings.HasSuffix(body, crcPlaceholder) {
		return false
	}
	return strings.EqualFold(payload[len(body):], crcHex(CRC16([]byte(body))))
}
