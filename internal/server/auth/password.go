package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the stored hashes were created with.
const bcryptCost = 10

// HashPassword produces a salted one-way hash of plaintext. Equal inputs
// yield different hashes across calls; bcrypt self-salts.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A
// mismatch is a normal false result, never an error.
func CheckPassword(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// dummyHash is compared against when a login targets a nonexistent account,
// so both failure paths cost one bcrypt verification.
var dummyHash, _ = HashPassword("lockbox-timing-filler")

// CheckPasswordDummy burns a bcrypt comparison without revealing anything.
func CheckPasswordDummy(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plaintext))
}
