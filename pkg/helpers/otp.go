package helpers

// Redis key helpers for the OTP login flow.

// KeyLoginOTP is the Redis key holding the pending login OTP for a user.
// One code per user; issuing a new one overwrites the previous.
func KeyLoginOTP(uid string) string {
	return "login:otp:" + uid
}
