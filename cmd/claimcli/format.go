package main

import (
	"math/big"
	"strings"
)

func formatGwei(v *big.Int) string {
	if v == nil { return "0" }
	r := new(big.Rat).SetFrac(v, big.NewInt(1_000_000_000))
	return r.FloatString(2)
}

func formatEther(v *big.Int) string {
	if v == nil { return "0" }
	s := new(big.Rat).SetFrac(v, big.NewInt(1_000_000_000_000_000_000))
	return s.FloatString(6)
}

func formatTokens(v *big.Int, decimals int) string {
	if v == nil { return "0" }
	if decimals <= 0 { return v.String() }
	s := new(big.Int).Abs(v).String()
	neg := v.Sign() < 0
	if len(s) <= decimals {
		frac := strings.Repeat("0", decimals-len(s)) + s
		out := "0." + strings.TrimRight(frac, "0")
		if out == "0." { out = "0" }
		if neg { return "-" + out }
		return out
	}
	intPart := s[:len(s)-decimals]
	frac := strings.TrimRight(s[len(s)-decimals:], "0")
	out := intPart
	if frac != "" { out = intPart + "." + frac }
	if neg { return "-" + out }
	return out
}
