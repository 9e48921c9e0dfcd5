// Package identity derives stable identifiers for lessons and builds so
// manifests can be diffed across runs.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Kind namespaces keys so a lesson and a build sharing a name never share
// an identifier.
type Kind string

const (
	KindLesson Kind = "lesson"
	KindBuild  Kind = "build"
)

// For derives the identifier of parts under kind. Parts are trimmed and
// joined with ":". It returns uuid.Nil when every part is blank.
func (k Kind) For(parts ...string) uuid.UUID {
	key := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			key = append(key, part)
		}
	}
	if len(key) == 0 {
		return uuid.Nil
	}
	return derive("coursesite:" + string(k) + ":" + strings.Join(key, ":"))
}

// derive hashes key with go-hashid, falling back to a name based SHA-1 UUID
// when hashing fails.
func derive(key string) uuid.UUID {
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err == nil && id != uuid.Nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

// LessonUUID identifies a lesson directory.
func LessonUUID(name string) uuid.UUID {
	return KindLesson.For(name)
}

// BuildUUID identifies one build of outputDir started at stamp.
func BuildUUID(outputDir, stamp string) uuid.UUID {
	return KindBuild.For(outputDir, stamp)
}
