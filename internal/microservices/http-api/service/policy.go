package service

import (
	"mediatracker/internal/config"
	"mediatracker/internal/sanitize"
)

// Policy holds the configurable domain rules.
type Policy struct {
	// TypeNamespace is config.NamespaceOwn or config.NamespaceVisible.
	TypeNamespace string
	// DedupeMetadata makes supplied metadata part of the media duplicate check.
	DedupeMetadata bool
	RatingRange    sanitize.RangePolicy
}

// DefaultPolicy is used for any rule the config leaves empty.
func DefaultPolicy() Policy {
	return Policy{
		TypeNamespace:  config.NamespaceOwn,
		DedupeMetadata: true,
		RatingRange:    sanitize.RangeReject,
	}
}

func PolicyFromConfig(cfg *config.Config) (Policy, error) {
	p := DefaultPolicy()
	if cfg.MediaTypeNamespace != "" {
		p.TypeNamespace = cfg.MediaTypeNamespace
	}
	if cfg.RatingRangePolicy != "" {
		rating, err := sanitize.ParseRangePolicy(cfg.RatingRangePolicy)
		if err != nil {
			return Policy{}, err
		}
		p.RatingRange = rating
	}
	p.DedupeMetadata = cfg.MediaDedupeMetadata
	return p, nil
}
