package db

import (
	"database/sql"
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/venicegeo/sidd-go/record"
	"github.com/venicegeo/sidd-go/sidd"
	"github.com/venicegeo/sidd-go/util"
)

//BeginIngestJobMessage is sent on a channel to start an ingest job.
const BeginIngestJobMessage = "start"

//AbortIngestJobMessage is sent on a channel to stop an in-progress job.
const AbortIngestJobMessage = "stop"

type jobStats struct {
	JobID                string
	NumberAddedOrUpdated int
	NumberSkipped        int
	NumberError          int
	StartTime            time.Time
	EndTime              time.Time
	CanceledByUser       bool
}

func (stats *jobStats) String() string {
	return fmt.Sprintf(`
		Job:	%v
		Start:	%v
		End:	%v
		Canceled: %v
		#Added:		%v
		#Skipped:	%v
		#Error:		%v
		`,
		stats.JobID,
		stats.StartTime.Format("Mon Jan _2 15:04:05 2006"),
		stats.EndTime.Format("Mon Jan _2 15:04:05 2006"),
		stats.CanceledByUser,
		stats.NumberAddedOrUpdated,
		stats.NumberSkipped,
		stats.NumberError)
}

type ingestOutcome int

const (
	documentAdded ingestOutcome = iota
	documentSkipped
	documentFailed
)

//Ingest parses each metadata document and inserts/updates database records
//for products.
func (imp *Importer) Ingest(sourcePaths []string, database *sql.DB, cancelChan <-chan string) (result string) {
	var stats jobStats
	stats.JobID, _ = util.PsuUUID()
	stats.StartTime = time.Now()
	lastProgressLogTime := time.Now()
	progressLogInterval := time.Duration(time.Second * 30)

IngestLoop:
	for _, sourcePath := range sourcePaths {
		//Check whether the user has requested cancelation.
		if abort := drainMessages(cancelChan); abort {
			log.Println("Ingest job canceled by user.")
			stats.CanceledByUser = true
			break IngestLoop
		}

		//Report the status to anyone waiting for it.
		drainStatusChannel(imp.statusChan, &stats)

		//Occasionally emit progress to the log stream
		if time.Since(lastProgressLogTime) > progressLogInterval {
			log.Printf("Ingest Progress: Added:%v Skipped:%v Error:%v", stats.NumberAddedOrUpdated, stats.NumberSkipped, stats.NumberError)
			lastProgressLogTime = time.Now()
		}

		//Index the document.
		outcome, err := ingestDocument(database, sourcePath, imp.strict)
		switch outcome {
		case documentAdded:
			stats.NumberAddedOrUpdated++
		case documentSkipped:
			//Strict mode refuses documents that fail validation.
			stats.NumberSkipped++
			log.Println("Skipping invalid document:", sourcePath, err)
		default:
			stats.NumberError++
			log.Println("Error ingesting document:", sourcePath, err)
		}
	}

	//Clear the status requests before doing the long-running operation.
	drainStatusChannel(imp.statusChan, &stats)
	doDatabaseMaintenance(database)

	stats.EndTime = time.Now()
	log.Printf("Ingest Complete: %v", stats.String())
	log.Printf("Ingest took %s", stats.EndTime.Sub(stats.StartTime))

	return fmt.Sprintf("%v", stats.String())
}

//ingestDocument reads one metadata document and updates the index for its
//product inside a single transaction.
func ingestDocument(database *sql.DB, sourcePath string, strict bool) (ingestOutcome, error) {
	data, err := ioutil.ReadFile(sourcePath)
	if err != nil {
		return documentFailed, err
	}

	downstream, err := sidd.ParseDownstreamReprocessing(data)
	if err != nil {
		return documentFailed, err
	}

	if err = record.Validate(downstream); err != nil {
		if strict {
			return documentSkipped, err
		}
		log.Println("Indexing incomplete document:", sourcePath, err)
	}

	productID := productIDFromPath(sourcePath)
	product := ProductRecordFromDownstream(productID, sourcePath, time.Now().UTC(), downstream)
	events, err := EventRecordsFromDownstream(productID, downstream)
	if err != nil {
		return documentFailed, err
	}

	tx, err := database.Begin()
	if err != nil {
		return documentFailed, err
	}
	if err = UpsertProduct(tx, product); err != nil {
		tx.Rollback()
		return documentFailed, err
	}
	if err = ReplaceEvents(tx, productID, events); err != nil {
		tx.Rollback()
		return documentFailed, err
	}
	if err = tx.Commit(); err != nil {
		return documentFailed, err
	}

	return documentAdded, nil
}

//productIDFromPath derives the product identifier from the document file name.
func productIDFromPath(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

//drainMessages reads all the messages from the channel looking for
//any abort messages.
//All other messages will be ignored and discarded.
func drainMessages(messageChan <-chan string) (abortRequested bool) {
	abortRequested = false
	for {
		select {
		case msg := <-messageChan:
			abortRequested = abortRequested || (msg == AbortIngestJobMessage)
		default:
			return
		}
	}
}

//drainStatusChannel drains the status request channel
//and sends back a status string
func drainStatusChannel(statusChan <-chan chan string, stats *jobStats) {
	for {
		select {
		case resp := <-statusChan:
			if resp != nil {
				select {
				case resp <- fmt.Sprintf("%v\nIn progress\n%v", time.Now().Format("Mon Jan _2 15:04:05 2006"), stats.String()): //good
				default: //can't send. ignore this request.
				}
			}
		default:
			return
		}
	}
}

//doDatabaseMaintenance performs any maintenance that should be done
//after the import operation, e.g. rebuilding indexes
func doDatabaseMaintenance(database *sql.DB) {
	log.Println("Starting database maintenance.")
	_, err := database.Exec(databaseMaintenanceStatement)
	if err != nil {
		log.Println("Error during database maintenance.", err)
	}
	log.Println("Database maintenance complete.")
}
