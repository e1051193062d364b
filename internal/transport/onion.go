package transport

import (
	"encoding/base32"
	"net"
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// onionSuffix is the common suffix for all onion addresses.
	onionSuffix = ".onion"

	// onionV3Version is the version byte for v3 onion addresses.
	onionV3Version = 0x03
)

// onionV3Pattern matches v3 onion addresses (56 base32 characters + .onion).
var onionV3Pattern = regexp.MustCompile(`^[a-z2-7]{56}\.onion$`)

// checksumPrefix is the prefix used in the v3 onion address checksum.
var checksumPrefix = []byte(".onion checksum")

// IsOnionHost reports whether host (optionally with port) is an onion service.
func IsOnionHost(host string) bool {
	return strings.HasSuffix(strings.ToLower(stripPort(host)), onionSuffix)
}

// ValidateOnionHost returns ErrInvalidOnionAddress if host is an onion
// service whose address is malformed or fails its checksum.
// Non-onion hosts are accepted as they are.
func ValidateOnionHost(host string) error {
	if !IsOnionHost(host) {
		return nil
	}
	if !IsValidV3Address(stripPort(host)) {
		return ErrInvalidOnionAddress
	}
	return nil
}

// IsValidV3Address checks format and checksum of a v3 onion address.
// The checksum is the first 2 bytes of
// SHA3-256(".onion checksum" || pubkey || version).
func IsValidV3Address(address string) bool {
	address = strings.ToLower(address)
	if !onionV3Pattern.MatchString(address) {
		return false
	}

	decoded, err := base32.StdEncoding.DecodeString(strings.ToUpper(strings.TrimSuffix(address, onionSuffix)))
	if err != nil || len(decoded) != 35 {
		return false
	}

	pubkey := decoded[:32]
	checksum := decoded[32:34]
	version := decoded[34]
	if version != onionV3Version {
		return false
	}

	expected := v3Checksum(pubkey, version)
	return checksum[0] == expected[0] && checksum[1] == expected[1]
}

// V3AddressFromPublicKey computes the v3 onion address of an ed25519 public key.
func V3AddressFromPublicKey(pubkey []byte) (string, error) {
	if len(pubkey) != 32 {
		return "", ErrInvalidOnionAddress
	}

	data := make([]byte, 35)
	copy(data[:32], pubkey)
	copy(data[32:34], v3Checksum(pubkey, onionV3Version))
	data[34] = onionV3Version

	return strings.ToLower(base32.StdEncoding.EncodeToString(data)) + onionSuffix, nil
}

func v3Checksum(pubkey []byte, version byte) []byte {
	data := make([]byte, 0, len(checksumPrefix)+len(pubkey)+1)
	data = append(data, checksumPrefix...)
	data = append(data, pubkey...)
	data = append(data, version)
	hash := sha3.Sum256(data)
	return hash[:2]
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
