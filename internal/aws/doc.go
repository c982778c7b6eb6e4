// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK configuration and reads documents from S3 for
// s3://bucket/key[?versionId=v] inputs.
package aws
