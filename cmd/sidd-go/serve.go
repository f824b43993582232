// Copyright 2019, RadiantBlue Technologies, Inc.
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

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/venicegeo/sidd-go/catalog"
	db "github.com/venicegeo/sidd-go/catalog/db"
	"github.com/venicegeo/sidd-go/util"
	cli "gopkg.in/urfave/cli.v1"
)

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	router.Handle("/metadata/validate", catalog.NewValidateHandler()).Methods("POST")

	if searchHandler, err := catalog.NewSearchHandler(getDbConnectionFunc); err == nil {
		router.Handle("/catalog/discover", searchHandler)
	} else {
		return nil, err
	}

	if productHandler, err := catalog.NewProductHandler(getDbConnectionFunc); err == nil {
		router.Handle("/catalog/products/{id}", productHandler)
	} else {
		return nil, err
	}

	if productXMLHandler, err := catalog.NewProductXMLHandler(getDbConnectionFunc); err == nil {
		router.Handle("/catalog/products/{id}/xml", productXMLHandler)
	} else {
		return nil, err
	}

	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := getPortStr()

	if sourceDir := util.GetIngestSource(); len(sourceDir) != 0 {
		util.LogInfo(logContext, fmt.Sprintf("Starting metadata ingest loop for source directory: '%s'", sourceDir))
		strict, _ := util.IsStrictValidationEnabled()
		importer := db.NewImporter(sourceDir, strict, getDbConnectionFunc)
		go importer.ImportWhile(make(chan string), util.GetIngestFrequency())
	} else {
		util.LogAlert(logContext, "No ingest source directory found, not starting metadata ingest loop")
	}

	if router, err := createRouter(logContext); err == nil {
		launchServerFunc(portStr, router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
