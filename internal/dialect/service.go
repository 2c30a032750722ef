// Package dialect wires a rule table and a translator into the service used
// by the CLI and the HTTP server.
package dialect

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/example/go-meddl/internal/config"
	"github.com/example/go-meddl/internal/rules"
	"github.com/example/go-meddl/internal/text"
	"github.com/example/go-meddl/internal/translate"
)

type Service struct {
	tr        *translate.Translator
	tableName string
}

func NewService(cfg config.Config) (*Service, error) {
	table, name, err := rules.LoadOrDefault(cfg.Rules.Path)
	if err != nil {
		return nil, err
	}

	tag := language.German
	if cfg.Rules.Language != "" {
		tag, err = language.Parse(cfg.Rules.Language)
		if err != nil {
			return nil, fmt.Errorf("parse language %q: %w", cfg.Rules.Language, err)
		}
	}

	opts := []translate.Option{
		translate.WithInterludeRate(cfg.Rules.InterludeRate),
		translate.WithLanguage(tag),
		translate.WithLogger(slog.Default()),
	}
	if cfg.Rules.Seed != 0 {
		opts = append(opts, translate.WithSource(translate.NewSource(cfg.Rules.Seed)))
	}

	slog.Debug("rule table loaded", "source", name, "language", tag.String())

	return &Service{
		tr:        translate.New(table, opts...),
		tableName: name,
	}, nil
}

// Translate prepares input as a single sentence and translates it. A
// non-zero seed gives a reproducible result for this call only.
func (s *Service) Translate(ctx context.Context, input string, seed uint64) (string, error) {
	sentence, err := text.PrepareSentence(input)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tr := s.tr
	if seed != 0 {
		tr = tr.WithSource(translate.NewSource(seed))
	}
	return tr.Translate(sentence), nil
}

func (s *Service) Table() *rules.Table { return s.tr.Table() }

// TableName identifies where the rule table was loaded from.
func (s *Service) TableName() string { return s.tableName }

func (s *Service) Stats() rules.Stats { return s.tr.Table().Stats() }
