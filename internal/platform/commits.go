package platform

import (
	"strings"
)

// Commit types used for versioned saves.
const (
	CommitTypeFeat  = "feat"
	CommitTypeFix   = "fix"
	CommitTypeChore = "chore"
	CommitTypeI18n  = "i18n"
)

// Trailer marks commits recorded by keyloom.
const Trailer = "Saved-with: keyloom"

// FormatChangeReason builds a Conventional Commit message:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Saved-with: keyloom
func FormatChangeReason(ctype, scope, subject, body string) string {
	var sb strings.Builder

	if ctype == "" {
		ctype = CommitTypeChore
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(body)
	}

	sb.WriteString("\n\n")
	sb.WriteString(Trailer)

	return sb.String()
}

// AppendTrailer adds the keyloom trailer to a free-form message (-m) once.
func AppendTrailer(msg string) string {
	if strings.Contains(msg, Trailer) {
		return msg
	}
	msg = strings.TrimRight(msg, "\n")
	return msg + "\n\n" + Trailer
}
