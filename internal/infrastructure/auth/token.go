// Package auth provides bearer-token sources for outbound backend calls.
// Token issuance and refresh belong to the external auth provider; this
// package only surfaces the current token.
package auth

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

// StaticTokenSource returns the same token for every call.
type StaticTokenSource struct {
	token string
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

func (s *StaticTokenSource) Token(context.Context) (string, error) {
	if s.token == "" {
		return "", domain.WrapError(domain.ErrUnauthorized, "static token", errEmptyToken)
	}
	return s.token, nil
}

// FileTokenSource re-reads the token file on every call, so an external
// process can rotate the token without restarting the daemon.
type FileTokenSource struct {
	path string
}

func NewFileTokenSource(path string) *FileTokenSource {
	return &FileTokenSource{path: path}
}

func (s *FileTokenSource) Token(context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", domain.WrapError(domain.ErrUnauthorized, "read token file", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", domain.WrapError(domain.ErrUnauthorized, "read token file", errEmptyToken)
	}
	return token, nil
}

var errEmptyToken = errors.New("empty token")
