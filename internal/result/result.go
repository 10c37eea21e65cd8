package result

import "savedhi/internal/model"

// Materialize routes resultType to its branch (spec §4.5). The stateful
// branch needs the user key (to decrypt resultParam); the template and
// derive branches only need the site key.
func Materialize(userKey *model.UserKey, siteKey *model.SiteKey, resultType model.ResultType, resultParam string) (string, error) {
	switch resultType.Class() {
	case model.ClassTemplate:
		return Template(siteKey, resultType)
	case model.ClassStateful:
		return Decrypt(userKey, resultParam)
	case model.ClassDerive:
		return Derive(siteKey, resultParam)
	default:
		return "", model.NewError(model.KindUnsupportedResultType, "result type has no recognized class")
	}
}
