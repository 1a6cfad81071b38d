// Package sign implements the gateway's RSA signature scheme: parameters
// are canonicalized into a sorted k=v&... string and signed with RSA
// PKCS#1 v1.5 using SHA1 (sign type RSA) or SHA256 (sign type RSA2).
package sign

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"log"
	"sort"
	"strings"

	_ "crypto/sha1"
	_ "crypto/sha256"
)

// Algorithm selects the digest used for signatures.
type Algorithm string

const (
	RSA  Algorithm = "RSA"  // SHA1
	RSA2 Algorithm = "RSA2" // SHA256
)

func (a Algorithm) hash() (crypto.Hash, error) {
	switch a {
	case RSA:
		return crypto.SHA1, nil
	case RSA2:
		return crypto.SHA256, nil
	default:
		return 0, fmt.Errorf("unsupported sign type %q", string(a))
	}
}

// Content builds the canonical string to sign: parameters sorted by key in
// byte order, joined as k=v with &, skipping empty values and the sign
// field itself. Callers on the verification path must drop sign_type from
// params first; it never participates in callback signatures.
func Content(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" || k == "sign" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "&")
}

// Sign signs content with the merchant private key and returns the
// signature as standard base64. Key material that fails both decode paths
// is a configuration error and is returned to the caller.
func Sign(content, privateKey string, alg Algorithm) (string, error) {
	hash, err := alg.hash()
	if err != nil {
		return "", err
	}
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return "", fmt.Errorf("load private key: %w", err)
	}
	return signWith(key, content, hash)
}

// Verify reports whether signature is a valid base64 RSA signature over
// content. It never returns an error: any decode, parse, or crypto failure
// is logged and reported as false.
func Verify(content, signature, publicKey string, alg Algorithm) bool {
	hash, err := alg.hash()
	if err != nil {
		log.Printf("signature check: %v", err)
		return false
	}
	key, err := parsePublicKey(publicKey)
	if err != nil {
		log.Printf("signature check: load public key: %v", err)
		return false
	}
	return verifyWith(key, content, signature, hash)
}

func signWith(key *rsa.PrivateKey, content string, hash crypto.Hash) (string, error) {
	h := hash.New()
	h.Write([]byte(content))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, hash, h.Sum(nil))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

func verifyWith(key *rsa.PublicKey, content, signature string, hash crypto.Hash) bool {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		log.Printf("signature check: decode signature: %v", err)
		return false
	}
	h := hash.New()
	h.Write([]byte(content))
	if err := rsa.VerifyPKCS1v15(key, hash, h.Sum(nil), sig); err != nil {
		log.Printf("signature check failed: %v", err)
		return false
	}
	return true
}

// Signer holds parsed key material so requests and callbacks don't re-parse
// keys on every call. It is safe for concurrent use.
type Signer struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
	hash    crypto.Hash
}

// NewSigner parses both keys up front. Malformed key material or an unknown
// algorithm is a fatal configuration error.
func NewSigner(privateKey, publicKey string, alg Algorithm) (*Signer, error) {
	hash, err := alg.hash()
	if err != nil {
		return nil, err
	}
	private, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}
	public, err := parsePublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("load public key: %w", err)
	}
	return &Signer{private: private, public: public, hash: hash}, nil
}

// Sign returns the base64 signature over content.
func (s *Signer) Sign(content string) (string, error) {
	return signWith(s.private, content, s.hash)
}

// Verify reports whether signature matches content under the gateway
// public key.
func (s *Signer) Verify(content, signature string) bool {
	return verifyWith(s.public, content, signature, s.hash)
}
