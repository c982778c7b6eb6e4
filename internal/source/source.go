// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tfctl/objdiff/internal/aws"
	"github.com/tfctl/objdiff/internal/cacheutil"
	"github.com/tfctl/objdiff/internal/log"
)

// Stdin is the document reference that reads standard input.
const Stdin = "-"

// Document is a decoded input.
type Document struct {
	Ref    string
	Format Format
	Data   any
}

// S3ClientFunc builds the client used for s3:// references. It is called at
// most once per Loader, on first use.
type S3ClientFunc func(ctx context.Context) (aws.ObjectGetter, error)

// Loader resolves document references.
type Loader struct {
	// Format forces a format for every document. FormatAuto detects it.
	Format Format
	// Stdin backs the "-" reference. Nil means os.Stdin.
	Stdin io.Reader
	// S3 builds the S3 client. Nil disables s3:// references.
	S3 S3ClientFunc

	once      sync.Once
	client    aws.ObjectGetter
	clientErr error
	stdinRead bool
}

// Load reads and decodes the document at ref.
func (l *Loader) Load(ctx context.Context, ref string) (Document, error) {
	data, name, err := l.read(ctx, ref)
	if err != nil {
		return Document{}, err
	}

	f := l.Format
	if f == FormatAuto {
		f = FormatOf(name)
	}
	if f == FormatAuto {
		f = sniff(data)
	}

	doc, err := Parse(data, name, f)
	if err != nil {
		return Document{}, err
	}
	log.Debugf("loaded %s: format=%s bytes=%d", ref, f, len(data))
	return Document{Ref: ref, Format: f, Data: doc}, nil
}

// read returns the raw bytes for ref and the name used for format detection.
func (l *Loader) read(ctx context.Context, ref string) ([]byte, string, error) {
	switch {
	case ref == Stdin:
		if l.stdinRead {
			return nil, "", fmt.Errorf("stdin can only be read once")
		}
		l.stdinRead = true
		r := l.Stdin
		if r == nil {
			r = os.Stdin
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, "stdin", nil

	case aws.IsURI(ref):
		u, err := aws.ParseURI(ref)
		if err != nil {
			return nil, "", err
		}
		data, err := l.fetch(ctx, u)
		return data, u.Key, err

	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", ref, err)
		}
		return data, ref, nil
	}
}

// fetch downloads an S3 object. Versioned objects are immutable, so they go
// through the local cache; latest-version reads always hit S3.
func (l *Loader) fetch(ctx context.Context, u aws.URI) ([]byte, error) {
	client, err := l.s3(ctx)
	if err != nil {
		return nil, err
	}

	if u.VersionID == "" {
		return aws.Fetch(ctx, client, u)
	}
	return cacheutil.ReadThrough([]string{"s3", u.Bucket}, u.String(), func() ([]byte, error) {
		return aws.Fetch(ctx, client, u)
	})
}

func (l *Loader) s3(ctx context.Context) (aws.ObjectGetter, error) {
	if l.S3 == nil {
		return nil, fmt.Errorf("s3 documents are not enabled")
	}
	l.once.Do(func() {
		l.client, l.clientErr = l.S3(ctx)
		if l.clientErr != nil {
			l.clientErr = fmt.Errorf("failed to create s3 client: %w", l.clientErr)
		}
	})
	return l.client, l.clientErr
}
