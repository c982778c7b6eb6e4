// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/objdiff/internal/log"
)

// Scheme prefixes document locations stored in S3.
const Scheme = "s3://"

// ObjectGetter is the slice of the S3 API needed to read documents.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// VersionLister is the slice of the S3 API needed to enumerate versions.
type VersionLister interface {
	ListObjectVersions(ctx context.Context, params *s3v2.ListObjectVersionsInput, optFns ...func(*s3v2.Options)) (*s3v2.ListObjectVersionsOutput, error)
}

// Client reads documents and their versions.
type Client interface {
	ObjectGetter
	VersionLister
}

// Version is one stored version of an object.
type Version struct {
	ID           string
	LastModified time.Time
	Size         int64
	Latest       bool
}

// URI addresses one S3 object, optionally pinned to a version.
type URI struct {
	Bucket    string
	Key       string
	VersionID string
}

// IsURI reports whether s names an S3 object.
func IsURI(s string) bool {
	return strings.HasPrefix(s, Scheme)
}

// ParseURI parses s3://bucket/key[?versionId=v].
func ParseURI(raw string) (URI, error) {
	if !IsURI(raw) {
		return URI{}, fmt.Errorf("not an s3 uri: %s", raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return URI{}, fmt.Errorf("invalid s3 uri %s: %w", raw, err)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return URI{}, fmt.Errorf("s3 uri needs a bucket and a key: %s", raw)
	}

	return URI{Bucket: u.Host, Key: key, VersionID: u.Query().Get("versionId")}, nil
}

func (u URI) String() string {
	s := Scheme + u.Bucket + "/" + u.Key
	if u.VersionID != "" {
		s += "?versionId=" + url.QueryEscape(u.VersionID)
	}
	return s
}

// WithVersion returns u pinned to id.
func (u URI) WithVersion(id string) URI {
	u.VersionID = id
	return u
}

// ListVersions returns every version of u's object, newest first. Delete
// markers are not versions and are left out.
func ListVersions(ctx context.Context, client VersionLister, u URI) ([]Version, error) {
	in := &s3v2.ListObjectVersionsInput{
		Bucket: awsv2.String(u.Bucket),
		Prefix: awsv2.String(u.Key),
	}

	var versions []Version
	for {
		page, err := client.ListObjectVersions(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("failed to list versions of %s: %w", u, err)
		}
		for _, v := range page.Versions {
			// Prefix also matches longer keys.
			if awsv2.ToString(v.Key) != u.Key {
				continue
			}
			versions = append(versions, Version{
				ID:           awsv2.ToString(v.VersionId),
				LastModified: awsv2.ToTime(v.LastModified),
				Size:         awsv2.ToInt64(v.Size),
				Latest:       awsv2.ToBool(v.IsLatest),
			})
		}
		if !awsv2.ToBool(page.IsTruncated) {
			break
		}
		in.KeyMarker = page.NextKeyMarker
		in.VersionIdMarker = page.NextVersionIdMarker
	}

	slices.SortStableFunc(versions, func(a, b Version) int {
		return b.LastModified.Compare(a.LastModified)
	})
	log.Debugf("listed %s: versions=%d", u, len(versions))
	return versions, nil
}

// Fetch reads the whole object.
func Fetch(ctx context.Context, client ObjectGetter, u URI) ([]byte, error) {
	in := &s3v2.GetObjectInput{
		Bucket: awsv2.String(u.Bucket),
		Key:    awsv2.String(u.Key),
	}
	if u.VersionID != "" {
		in.VersionId = awsv2.String(u.VersionID)
	}

	out, err := client.GetObject(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", u, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u, err)
	}
	log.Debugf("fetched %s: bytes=%d", u, len(data))
	return data, nil
}
