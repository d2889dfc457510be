package helper

import "strconv"

// FormatRupiah memformat nominal integer jadi "Rp 1.250.000".
// Nominal di sistem ini selalu rupiah bulat, tidak ada pecahan.
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, ch)
	}
	if neg {
		return "Rp -" + string(out)
	}
	return "Rp " + string(out)
}
