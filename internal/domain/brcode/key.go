package brcode

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// KeyType is the shape of a Pix key.
type KeyType string

const (
	KeyTypeEVP   KeyType = "evp"
	KeyTypeEmail KeyType = "email"
	KeyTypePhone KeyType = "phone"
	KeyTypeCPF   KeyType = "cpf"
	KeyTypeCNPJ  KeyType = "cnpj"
)

const evpLen = 36

var validate = validator.New()

// ClassifyKey detects which of the Pix key formats key follows.
// Only the shape is checked; CPF/CNPJ check digits are not.
func ClassifyKey(key string) (KeyType, error) {
	switch {
	case len(key) == evpLen && uuid.Validate(key) == nil:
		return KeyTypeEVP, nil
	case strings.Contains(key, "@") && validate.Var(key, "email,max=77") == nil:
		return KeyTypeEmail, nil
	case strings.HasPrefix(key, "+55") && validate.Var(key, "e164") == nil:
		return KeyTypePhone, nil
	case validate.Var(key, "number,len=11") == nil:
		return KeyTypeCPF, nil
	case validate.Var(key, "number,len=14") == nil:
		return KeyTypeCNPJ, nil
	}
	return "", &EncodingError{Tag: TagMerchantAccount, Err: ErrUnknownKeyType}
}

// ValidateTxID accepts an empty txid, the *** placeholder or up to 25
// alphanumeric characters.
func ValidateTxID(txid string) error {
	if txid == "" || txid == DefaultTxID {
		return nil
	}
	if validate.Var(txid, "required,alphanum,max=25") != nil {
		return &EncodingError{Tag: TagAdditionalData, Err: ErrInvalidTxID}
	}
	return nil
}

// ValidateCharge applies the strict key and txid checks to c.
func ValidateCharge(c Charge) error {
	if _, err := ClassifyKey(c.Key); err != nil {
		return err
	}
	return ValidateTxID(c.TxID)
}
