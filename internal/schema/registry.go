package schema

import "sort"

// Validator turns a raw mapping into a validated record or a *ValidationError.
type Validator func(raw map[string]any) (any, error)

func adapt[T any](parse func(map[string]any) (T, error)) Validator {
	return func(raw map[string]any) (any, error) {
		v, err := parse(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

var registry = map[string]Validator{
	"ScoreCreate":         adapt(ParseScoreCreate),
	"Score":               adapt(ParseScore),
	"SocialNetworkCreate": adapt(ParseSocialNetworkCreate),
	"SocialNetwork":       adapt(ParseSocialNetwork),
	"UserCreate":          adapt(ParseUserCreate),
	"User":                adapt(ParseUser),
	"SupervisorCreate":    adapt(ParseSupervisorCreate),
	"SupervisorUpdate":    adapt(ParseSupervisorUpdate),
	"Supervisor":          adapt(ParseSupervisor),
	"Token":               adapt(ParseToken),
	"TokenPayload":        adapt(ParseTokenPayload),
}

// Lookup returns the validator registered under name.
func Lookup(name string) (Validator, bool) {
	v, ok := registry[name]
	return v, ok
}

// Names returns the registered schema names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
