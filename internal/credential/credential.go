package credential

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidCredential = errors.New("invalid credential")

// Credential is a remote team server account.
type Credential struct {
	UserName string `json:"UserName"`
	Password string `json:"Password"`
	Domain   string `json:"Domain"`
}

// Login returns the account name in DOMAIN\user form when a domain is set.
func (c Credential) Login() string {
	if c.Domain == "" {
		return c.UserName
	}
	return c.Domain + `\` + c.UserName
}

// Encrypter encrypts a string for storage.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
}

// Decrypter reverses an Encrypter.
type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}

// Serializer converts a credential to the string that gets encrypted.
type Serializer func(c Credential) (string, error)

// Serialize returns the canonical JSON form of the credential.
func Serialize(c Credential) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to serialize credential: %w", err)
	}
	return string(data), nil
}

// Deserialize parses the output of Serialize.
func Deserialize(data string) (Credential, error) {
	var c Credential
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return c, nil
}

// Hash serializes and encrypts the credential. The result is what gets stored.
func Hash(c Credential, serialize Serializer, enc Encrypter) (string, error) {
	serialized, err := serialize(c)
	if err != nil {
		return "", err
	}
	hash, err := enc.Encrypt(serialized)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt credential: %w", err)
	}
	return hash, nil
}

// FromHash decrypts and deserializes a stored credential hash.
func FromHash(hash string, dec Decrypter) (Credential, error) {
	serialized, err := dec.Decrypt(hash)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to decrypt credential: %w", err)
	}
	return Deserialize(serialized)
}
