package cryptox

import "crypto/md5"

// evpKDF derives keyLen+ivLen bytes from a passphrase and salt using the
// OpenSSL EVP_BytesToKey scheme with MD5 and one iteration. This is the
// derivation CryptoJS applies in passphrase mode, kept for envelope
// compatibility; it is not a password-hardening KDF and is never used for
// account credentials.
func evpKDF(passphrase, salt []byte, keyLen, ivLen int) (key, iv []byte) {
	var derived []byte
	var block []byte
	for len(derived) < keyLen+ivLen {
		h := md5.New()
		h.Write(block)
		h.Write(passphrase)
		h.Write(salt)
		block = h.Sum(nil)
		derived = append(derived, block...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+ivLen]
}
