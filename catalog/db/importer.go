package db

import (
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/venicegeo/sidd-go/util"
)

//ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

//Importer manages the state for an ingest job.
type Importer struct {
	sourceDir      string
	strict         bool
	dbConnProvider ConnectionProvider
	statusChan     chan chan string
}

//NewImporter initializes a new importer. In strict mode, documents that fail
//validation are skipped rather than indexed.
func NewImporter(
	sourceDir string,
	strict bool,
	dbConnProvider ConnectionProvider) *Importer {
	return &Importer{
		sourceDir:      sourceDir,
		strict:         strict,
		dbConnProvider: dbConnProvider,
		statusChan:     make(chan chan string, 10)}
}

//ImportWhile performs the Ingest() task and waits for a channel.
//Note: this is blocking
//The function will exit when messageChan is closed and any in-progress jobs complete.
//To close quickly, send AbortIngestJobMessage on messageChan before closing it.
func (imp *Importer) ImportWhile(messageChan <-chan string, maxTimeBetweenJobs time.Duration) {
	log.Println("Job loop started with frequency", maxTimeBetweenJobs)

	previousStatus := "\tNone"

	scheduleTimer := time.NewTimer(maxTimeBetweenJobs)
	nextScheduledStartTime := time.Now().Add(maxTimeBetweenJobs)

	var startJob bool
	for {
		startJob = false

		//Wait for a start message.
		//Also, status is reported cooperatively. (maybe not super elegant) so deal with any requests while we wait.
		select {
		case <-scheduleTimer.C:
			log.Println("Maximum time between jobs elapsed.")
			startJob = true
		case msg, ok := <-messageChan:
			if !ok {
				return //The message channel has been closed. Exit.
			}
			switch msg {
			case BeginIngestJobMessage:
				//The user has sent a start message. Start a job.
				log.Println("User requested job start.")
				startJob = true
			default:
				//ignore this message. We only want ones for "begin".
			}
		case respChan := <-imp.statusChan:
			//The user has sent a request for the current status.
			select {
			//Try to send a response on the provided channel.
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious job:\n%v",
				time.Now().Format("Mon Jan _2 15:04:05 2006"),
				nextScheduledStartTime.Format("Mon Jan _2 15:04:05 2006"),
				previousStatus): //good
			default:
				//Could not send immediately. We'll ignore it.
			}
		}

		if startJob {
			log.Println("Starting job.")
			//Do the actual import.
			previousStatus = imp.Import(messageChan)

			//Reset the timer.
			scheduleTimer.Stop()
			//Rather than keep track of whether we've received on the timer channel (maybe that's how we got here),
			//we'll just drain it in a general way.
		TimerDrainLoop:
			for {
				select {
				case <-scheduleTimer.C: //good, discard
				default:
					//Channel is empty. We're done.
					break TimerDrainLoop
				}
			}

			//This simple implementation just sets the timer to some duration in the future.
			//It might be desirable to add a reference time, e.g. so the timer only triggers
			//during low-usage hours.
			scheduleTimer.Reset(maxTimeBetweenJobs)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenJobs)
		}
	}
}

//GetStatus is a thread safe way to get information about the import operation.
func (imp *Importer) GetStatus() string {
	responseChan := make(chan string, 1) //Must have a buffer. reportStatus won't wait if it can't send.
	imp.statusChan <- responseChan
	status := <-responseChan
	return status
}

//Import performs the actual scan and update.
func (imp *Importer) Import(messageChan <-chan string) (result string) {
	sourcePaths, err := listDocuments(imp.sourceDir)
	if err != nil {
		log.Fatal("Could not scan the metadata source directory.", err)
	}

	//Database connection is opened right before the ingest, and closed
	//immediately after.
	database, err := imp.dbConnProvider(&util.BasicLogContext{})
	if err != nil {
		log.Fatal("Could not open database connection.")
	}
	defer database.Close()

	return imp.Ingest(sourcePaths, database, messageChan)
}

//listDocuments finds the metadata documents under the source directory,
//sorted so ingest order is stable between runs.
func listDocuments(sourceDir string) ([]string, error) {
	pattern := filepath.Join(filepath.Clean(sourceDir), "*.xml")
	log.Println("Scanning for documents matching", pattern)

	sourcePaths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(sourcePaths)
	return sourcePaths, nil
}
