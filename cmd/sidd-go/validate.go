package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/venicegeo/sidd-go/catalog"
	"github.com/venicegeo/sidd-go/record"
	"github.com/venicegeo/sidd-go/sidd"
	"github.com/venicegeo/sidd-go/util"
	cli "gopkg.in/urfave/cli.v1"
)

//validateFile parses one metadata document and reports its validation state.
func validateFile(path string) (catalog.ValidationReport, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return catalog.ValidationReport{}, err
	}

	downstream, err := sidd.ParseDownstreamReprocessing(data)
	if err != nil {
		return catalog.ValidationReport{}, err
	}

	return catalog.BuildValidationReport(downstream), nil
}

//validateAction checks each document named on the command line. The exit
//status is nonzero when any document is malformed or incomplete.
func validateAction(c *cli.Context) {
	if len(c.Args()) == 0 {
		log.Fatal("No documents to validate. Provide one or more file paths.")
	}

	failed := false
	for _, path := range c.Args() {
		report, err := validateFile(path)
		if err != nil {
			failed = true
			fmt.Printf("%s: error: %v\n", path, err)
			continue
		}
		if report.Valid {
			fmt.Printf("%s: valid\n", path)
		} else {
			failed = true
			fmt.Printf("%s: missing required fields: %v\n", path, report.Missing)
		}
	}

	if failed {
		os.Exit(1)
	}
}

//convertFile re-encodes one metadata document under the given namespace.
func convertFile(path string, ns *record.Namespace) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}

	downstream, err := sidd.ParseDownstreamReprocessing(data)
	if err != nil {
		return "", err
	}

	node, err := record.Encode(downstream, "", ns)
	if err != nil {
		return "", err
	}
	return node.Document(), nil
}

//convertAction rewrites each document named on the command line to stdout in
//canonical serialized form: schema field order, UTC microsecond timestamps,
//the configured namespace.
func convertAction(c *cli.Context) {
	if len(c.Args()) == 0 {
		log.Fatal("No documents to convert. Provide one or more file paths.")
	}

	ns := &record.Namespace{URI: util.GetNamespaceURI()}
	for _, path := range c.Args() {
		document, err := convertFile(path, ns)
		if err != nil {
			log.Fatalf("Could not convert %s: %v", path, err)
		}
		fmt.Println(document)
	}
}
