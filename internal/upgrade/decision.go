package upgrade

import "github.com/Masterminds/semver/v3"

// Decision classifies an installed version against the target version
type Decision int

const (
	// DecisionUpToDate means the installed version already matches the target.
	DecisionUpToDate Decision = iota

	// DecisionPerform means the installed version is the one supported
	// predecessor and the direct migration step applies.
	DecisionPerform

	// DecisionSkip means the installed version is neither current nor the
	// supported predecessor; migrating it automatically is not safe.
	DecisionSkip
)

func (d Decision) String() string {
	switch d {
	case DecisionUpToDate:
		return "up-to-date"
	case DecisionPerform:
		return "perform"
	case DecisionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Decide maps an installed and a target version to a Decision. It is pure
// and total: any pair of strings yields exactly one outcome.
func Decide(installed, target string) Decision {
	if versionsEqual(installed, target) {
		return DecisionUpToDate
	}
	if versionsEqual(installed, FromVersion) {
		return DecisionPerform
	}
	return DecisionSkip
}

// versionsEqual compares two version strings, normalizing through semver
// when both parse ("1.2.0" and "v1.2.0" are the same version) and falling
// back to string equality otherwise so the comparison never errors.
func versionsEqual(a, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return va.Equal(vb)
}

// versionSkew describes how the installed version relates to the target,
// for skip-version log context. Unparseable versions yield "unknown".
func versionSkew(installed, target string) string {
	vi, errI := semver.NewVersion(installed)
	vt, errT := semver.NewVersion(target)
	if errI != nil || errT != nil {
		return "unknown"
	}
	switch {
	case vi.LessThan(vt):
		return "older"
	case vi.GreaterThan(vt):
		return "newer"
	default:
		return "equal"
	}
}
