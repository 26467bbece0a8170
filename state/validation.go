package state

import (
	"fmt"
	"net/netip"
	"regexp"
	"slices"
)

var namePattern, _ = regexp.Compile("^[0-9a-z._-]+$")

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

func BindValidator(s string) error {
	_, err := netip.ParseAddrPort(s)
	return err
}

func NetworkConfigValidator(cfg *NetworkCfg) error {
	seen := make([]StopName, 0, len(cfg.Stops))
	for _, stop := range cfg.Stops {
		if err := NameValidator(string(stop.Name)); err != nil {
			return err
		}
		if slices.Contains(seen, stop.Name) {
			return fmt.Errorf("duplicate stop name: %s", stop.Name)
		}
		seen = append(seen, stop.Name)
	}
	// surface graph errors before anything is applied
	if _, err := cfg.Links(); err != nil {
		return err
	}
	return nil
}

func LocalConfigValidator(cfg *LocalCfg) error {
	if cfg.DebugBind != "" {
		if err := BindValidator(cfg.DebugBind); err != nil {
			return fmt.Errorf("invalid debug_bind: %w", err)
		}
	}
	return nil
}
