package validate

import "regexp"

// Bangladeshi mobile numbers: optional +88/88 country code, then 01 and an
// operator digit 3-9, then 8 digits.
var bdPhoneRe = regexp.MustCompile(`^(?:\+?88)?01[3-9]\d{8}$`)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func BDPhoneNumber(phone string) bool {
	return bdPhoneRe.MatchString(phone)
}

func Email(email string) bool {
	return emailRe.MatchString(email)
}
