// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package isbn validates the ISBN-10 and ISBN-13 book identifiers.
// All functions are pure and safe to be used concurrently.
package isbn

import (
	"strings"
	"unicode"
)

// Valid reports whether raw is an acceptable ISBN value. Since the
// ISBN of a book is optional, a blank raw is valid. Otherwise, spaces
// and hyphens are removed and the remaining characters must form an
// ISBN-10 or an ISBN-13 with a correct check digit.
func Valid(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	s := Normalize(raw)
	switch len(s) {
	case 10:
		return valid10(s)
	case 13:
		return valid13(s)
	default:
		return false
	}
}

// Normalize removes all hyphens and Unicode whitespace characters of
// raw, e.g., the no-break space.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

func valid10(s string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		if !isDigit(s[i]) {
			return false
		}
		sum += int(s[i]-'0') * (10 - i)
	}
	var check int
	switch c := s[9]; {
	case c == 'X':
		check = 10
	case isDigit(c):
		check = int(c - '0')
	default:
		return false
	}
	return check == (11-sum%11)%11
}

func valid13(s string) bool {
	for i := 0; i < 13; i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return int(s[12]-'0') == CheckDigit13(s[:12])
}

// CheckDigit10 computes the ISBN-10 check digit of the given nine
// leading digits. The returned value is in the [0, 10] range, where
// 10 is written as X. It panics if digits are not nine ASCII digits.
func CheckDigit10(digits string) int {
	if len(digits) != 9 {
		panic("isbn: CheckDigit10 needs 9 digits")
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += digit(digits[i]) * (10 - i)
	}
	return (11 - sum%11) % 11
}

// CheckDigit13 computes the ISBN-13 check digit of the given twelve
// leading digits. It panics if digits are not twelve ASCII digits.
func CheckDigit13(digits string) int {
	if len(digits) != 12 {
		panic("isbn: CheckDigit13 needs 12 digits")
	}
	sum := 0
	for i := 0; i < 12; i++ {
		w := 1
		if i%2 == 1 {
			w = 3
		}
		sum += digit(digits[i]) * w
	}
	return (10 - sum%10) % 10
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digit(c byte) int {
	if !isDigit(c) {
		panic("isbn: not a digit: " + string(c))
	}
	return int(c - '0')
}
