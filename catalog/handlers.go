package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/sidd-go/catalog/db"
	"github.com/venicegeo/sidd-go/record"
	"github.com/venicegeo/sidd-go/sidd"
	"github.com/venicegeo/sidd-go/util"
)

// SearchHandler is a handler for /catalog/discover
// @Title catalogSearchHandler
// @Description searches indexed products by their processing history
// @Accept  plain
// @Param   application     query   string  false        "Only match products processed by this application"
// @Param   appliedDate     query   string  false        "The minimum (earliest) applied date of a processing event"
// @Param   maxAppliedDate  query   string  false        "The maximum applied date of a processing event"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /catalog/discover [get]
type SearchHandler struct {
	Context Context
}

// NewSearchHandler creates a new handler using configuration
// from environment variables
func NewSearchHandler(connectionProvider db.ConnectionProvider) (*SearchHandler, error) {
	namespaceURI := util.GetNamespaceURI()

	db, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}

	return &SearchHandler{
		Context: Context{
			DB:           db,
			NamespaceURI: namespaceURI,
		},
	}, nil
}

// ServeHTTP implements the http.Handler interface for the SearchHandler type
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	applicationName := r.FormValue("application")
	minApplied := time.Unix(0, 0)
	if r.FormValue("appliedDate") != "" {
		if minApplied, err = record.ParseMetadataTime(r.FormValue("appliedDate")); err != nil {
			message := fmt.Sprintf("Applied date value of %v is invalid.", r.FormValue("appliedDate"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}
	maxApplied := time.Now()
	if r.FormValue("maxAppliedDate") != "" {
		if maxApplied, err = record.ParseMetadataTime(r.FormValue("maxAppliedDate")); err != nil {
			message := fmt.Sprintf("Applied date value of %v is invalid.", r.FormValue("maxAppliedDate"))
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
			tx.Rollback()
			return
		}
	}

	multiResult, err := discoverProducts(tx, applicationName, minApplied, maxApplied)

	if err != nil {
		message := fmt.Sprintf("Error searching for products: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	featureCollection, err := multiResult.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Write([]byte(featureCollection.String()))
}

// ProductHandler is a handler for /catalog/products/{id}
// @Title catalogProductHandler
// @Description returns one indexed product as a GeoJSON feature
// @Accept  plain
// @Param   id            path   string  false        "The ID of the requested product"
// @Success 200 {object}  geojson.Feature
// @Failure 404 {object}  string
// @Router /catalog/products/{id} [get]
type ProductHandler struct {
	Context Context
}

// NewProductHandler creates a new handler using the environment and given DB
func NewProductHandler(connectionProvider db.ConnectionProvider) (*ProductHandler, error) {
	namespaceURI := util.GetNamespaceURI()

	db, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}

	return &ProductHandler{
		Context: Context{
			DB:           db,
			NamespaceURI: namespaceURI,
		},
	}, nil
}

func (h ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	productID, ok := mux.Vars(r)["id"]
	if !ok {
		message := "No product ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	result, err := getProduct(tx, productID)
	if err == sql.ErrNoRows {
		message := fmt.Sprintf("Product not found: %s", productID)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		tx.Rollback()
		return
	}
	if err != nil {
		message := fmt.Sprintf("Server error searching for product: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	feature, err := result.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting metadata to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}
	w.Write([]byte(feature.String()))
}

// ProductXMLHandler is a handler for /catalog/products/{id}/xml
// @Title catalogProductXMLHandler
// @Description rebuilds the metadata document for an indexed product
// @Accept  plain
// @Param   id            path   string  false        "The ID of the requested product"
// @Success 200 {object}  string
// @Failure 404 {object}  string
// @Router /catalog/products/{id}/xml [get]
type ProductXMLHandler struct {
	Context Context
}

// NewProductXMLHandler creates a new handler using the environment and given DB
func NewProductXMLHandler(connectionProvider db.ConnectionProvider) (*ProductXMLHandler, error) {
	namespaceURI := util.GetNamespaceURI()

	db, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}

	return &ProductXMLHandler{
		Context: Context{
			DB:           db,
			NamespaceURI: namespaceURI,
		},
	}, nil
}

func (h ProductXMLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	productID, ok := mux.Vars(r)["id"]
	if !ok {
		message := "No product ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	tx, err := h.Context.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	defer tx.Commit()

	document, err := getProductDocument(tx, h.Context, productID)
	if err == sql.ErrNoRows {
		message := fmt.Sprintf("Product not found: %s", productID)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		tx.Rollback()
		return
	}
	if err != nil {
		message := fmt.Sprintf("Error rebuilding product document: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write(document)
}

// ValidateHandler is a handler for /metadata/validate
// @Title catalogValidateHandler
// @Description parses a posted metadata document and reports its missing
// required fields
// @Accept  xml
// @Success 200 {object}  ValidationReport
// @Failure 400 {object}  string
// @Router /metadata/validate [post]
type ValidateHandler struct {
	Context Context
}

// NewValidateHandler creates a new handler. Validation needs no database.
func NewValidateHandler() *ValidateHandler {
	return &ValidateHandler{
		Context: Context{
			NamespaceURI: util.GetNamespaceURI(),
		},
	}
}

func (h ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		message := fmt.Sprintf("Could not read request body: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	downstream, err := sidd.ParseDownstreamReprocessing(body)
	if err != nil {
		message := fmt.Sprintf("The request body is not a valid metadata document: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	report := BuildValidationReport(downstream)
	response, err := json.Marshal(report)
	if err != nil {
		message := fmt.Sprintf("Error marshaling validation report: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(response)
}
