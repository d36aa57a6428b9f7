package outbound

// PasswordService hashes credentials one-way and verifies plaintext against a
// stored hash. Verify returns (false, nil) on a clean mismatch.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}
