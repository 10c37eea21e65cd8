package result

import (
	"strconv"

	"savedhi/internal/model"
	"savedhi/internal/primitives"
)

const (
	defaultDeriveBits = 512
	minDeriveBits     = 128
	maxDeriveBits     = 512
)

// Derive materializes a derive-class result: a blake2b subkey of the site
// key, sized in bits by resultParam (decimal, default 512, must be in
// [128, 512] and a multiple of 8).
func Derive(siteKey *model.SiteKey, resultParam string) (string, error) {
	bits := defaultDeriveBits
	if resultParam != "" {
		parsed, err := strconv.Atoi(resultParam)
		if err != nil {
			return "", model.WrapError(model.KindFormatIllegal, "derive bit size is not a number", err)
		}
		bits = parsed
	}
	if bits < minDeriveBits || bits > maxDeriveBits || bits%8 != 0 {
		return "", model.NewError(model.KindFormatIllegal, "derive bit size must be in [128, 512] and a multiple of 8")
	}

	subkey, err := primitives.Blake2b(siteKey.Bytes[:], bits/8)
	if err != nil {
		return "", err
	}
	return primitives.Base64Encode(subkey), nil
}
