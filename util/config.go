// Copyright 2016, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"os"
	"strconv"
	"time"
)

// Environment variables
const (
	METADATA_INGEST_SOURCE    = "METADATA_INGEST_SOURCE"
	METADATA_INGEST_FREQUENCY = "METADATA_INGEST_FREQUENCY"
	SIDD_NAMESPACE_URI        = "SIDD_NAMESPACE_URI"
	SIDD_STRICT_VALIDATION    = "SIDD_STRICT_VALIDATION"
)

const defaultNamespaceURI = "urn:SIDD:2.0.0"

const defaultIngestFrequency = 1 * time.Hour

// GetIngestSource returns a string for the METADATA_INGEST_SOURCE environment
// variable, the directory scheduled ingest reads metadata documents from
func GetIngestSource() string {
	source, ok := os.LookupEnv(METADATA_INGEST_SOURCE)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get a metadata ingest source directory from the environment. Scheduled ingest will not be available.")
	}
	return source
}

// GetIngestFrequency returns a duration for the METADATA_INGEST_FREQUENCY
// environment variable or the default if it is absent or unparseable
func GetIngestFrequency() time.Duration {
	frequency, ok := os.LookupEnv(METADATA_INGEST_FREQUENCY)
	if !ok {
		return defaultIngestFrequency
	}
	parsed, err := time.ParseDuration(frequency)
	if err != nil {
		LogAlert(&BasicLogContext{}, "Could not parse metadata ingest frequency: "+frequency+". Using default.")
		return defaultIngestFrequency
	}
	return parsed
}

// GetNamespaceURI returns a string for the SIDD_NAMESPACE_URI environment
// variable or the standard namespace if needed
func GetNamespaceURI() string {
	namespaceURI, ok := os.LookupEnv(SIDD_NAMESPACE_URI)
	if !ok {
		LogInfo(&BasicLogContext{}, "Did not get an explicit metadata namespace from the environment. Using default namespace: "+defaultNamespaceURI)
		namespaceURI = defaultNamespaceURI
	}
	return namespaceURI
}

// IsStrictValidationEnabled returns true if SIDD_STRICT_VALIDATION is true
func IsStrictValidationEnabled() (bool, error) {
	return strconv.ParseBool(os.Getenv(SIDD_STRICT_VALIDATION))
}
