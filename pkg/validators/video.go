// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"bitwise74/catalog-api/internal/model"
	"errors"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	ErrTitleEmpty       = errors.New("no title provided")
	ErrTitleTooLong     = errors.New("title is too long")
	ErrDescriptionEmpty = errors.New("no description provided")
	ErrDescriptionLong  = errors.New("description is too long")
	ErrFileIDInvalid    = errors.New("invalid file ID provided")
	ErrCategoryInvalid  = errors.New("invalid category provided")
	ErrTooManyTags      = errors.New("too many tags")
	ErrTagInvalid       = errors.New("tags can't contain commas and must be at most 32 characters long")
	ErrThumbnailInvalid = errors.New("thumbnail must be an http(s) URL")
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 5000
	maxFileIDLen      = 255
	maxTags           = 20
	maxTagLen         = 32
)

// TitleValidator expects an already trimmed title
func TitleValidator(t string) error {
	if t == "" {
		return ErrTitleEmpty
	}

	if utf8.RuneCountInString(t) > maxTitleLen {
		return ErrTitleTooLong
	}

	return nil
}

func DescriptionValidator(d string) error {
	if strings.TrimSpace(d) == "" {
		return ErrDescriptionEmpty
	}

	if utf8.RuneCountInString(d) > maxDescriptionLen {
		return ErrDescriptionLong
	}

	return nil
}

func FileIDValidator(id string) error {
	if id == "" || len(id) > maxFileIDLen || strings.ContainsAny(id, " \t\r\n") {
		return ErrFileIDInvalid
	}

	return nil
}

// CategoryValidator returns the category to store. Empty means the default one.
func CategoryValidator(c string) (string, error) {
	if c == "" {
		return model.DefaultCategory, nil
	}

	if !slices.Contains(model.Categories, c) {
		return "", ErrCategoryInvalid
	}

	return c, nil
}

// TagsValidator trims every tag and drops the empty ones. Duplicates are kept.
func TagsValidator(tags []string) (model.StringSlice, error) {
	out := make(model.StringSlice, 0, len(tags))

	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}

		if strings.Contains(t, ",") || utf8.RuneCountInString(t) > maxTagLen {
			return nil, ErrTagInvalid
		}

		out = append(out, t)
	}

	if len(out) > maxTags {
		return nil, ErrTooManyTags
	}

	return out, nil
}

func ThumbnailValidator(u string) error {
	if u == "" {
		return nil
	}

	parsed, err := url.Parse(u)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ErrThumbnailInvalid
	}

	return nil
}
