// Package rut valida y formatea RUT chilenos (módulo 11).
package rut

import (
	"regexp"
	"strings"
)

var cleanRe = regexp.MustCompile(`[^0-9Kk]`)
var bodyRe = regexp.MustCompile(`^[0-9]{7,8}[0-9K]$`)

// Normalize limpia puntos y guión y deja el dígito verificador en mayúscula.
// "12.345.678-5" -> "123456785".
func Normalize(rut string) string {
	return strings.ToUpper(cleanRe.ReplaceAllString(rut, ""))
}

// Validate verifica formato y dígito verificador (módulo 11).
func Validate(rut string) bool {
	r := Normalize(rut)
	if !bodyRe.MatchString(r) {
		return false
	}
	body := r[:len(r)-1]
	dv := r[len(r)-1:]

	sum := 0
	mult := 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * mult
		if mult == 7 {
			mult = 2
		} else {
			mult++
		}
	}

	esperado := 11 - (sum % 11)
	var dvCalc string
	switch esperado {
	case 11:
		dvCalc = "0"
	case 10:
		dvCalc = "K"
	default:
		dvCalc = string(rune('0' + esperado))
	}
	return dv == dvCalc
}

// Format devuelve el RUT con puntos y guión: "123456785" -> "12.345.678-5".
func Format(rut string) string {
	r := Normalize(rut)
	if len(r) < 2 {
		return r
	}
	body := r[:len(r)-1]
	dv := r[len(r)-1:]

	var b strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String() + "-" + dv
}
