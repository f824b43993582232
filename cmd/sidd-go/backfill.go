package main

import (
	"database/sql"
	"io/ioutil"
	"log"
	"time"

	db "github.com/venicegeo/sidd-go/catalog/db"
	"github.com/venicegeo/sidd-go/sidd"
	"github.com/venicegeo/sidd-go/util"
	cli "gopkg.in/urfave/cli.v1"
)

const missingCornersQuery = `
SELECT product_id, source_file FROM products WHERE
ul_row IS NULL OR
ur_row IS NULL OR
ll_row IS NULL OR
lr_row IS NULL
`

const updateCornersSQL = `
UPDATE products SET
	ul_row = $2, ul_col = $3,
	ur_row = $4, ur_col = $5,
	ll_row = $6, ll_col = $7,
	lr_row = $8, lr_col = $9
WHERE product_id = $1
`

type productRow struct {
	productID  string
	sourceFile string
}

type productCorners struct {
	productID string
	product   *db.ProductRecord
}

//backfillCornersAction re-parses the source documents of indexed products
//whose corner columns are missing, and fills them in.
func backfillCornersAction(*cli.Context) {
	conn, err := getDbConnection(&util.BasicLogContext{})

	if err != nil {
		log.Fatal("Error opening db connection.")
	}
	defer conn.Close()

	//Create the statement to write the corners into the database.
	updateStmt, err := conn.Prepare(updateCornersSQL)
	if err != nil {
		log.Fatal("Error preparing update statement: " + err.Error())
	}
	defer updateStmt.Close()

	rows, err := conn.Query(missingCornersQuery)
	if err != nil {
		log.Fatal("Error with query.")
	}
	defer rows.Close()

	numWorkers := 10
	productsQueue := make(chan *productRow, numWorkers)
	responseQueue := make(chan *productCorners, numWorkers)
	workerCompleteChan := make(chan bool, 1)

	//Start some workers.
	for i := 0; i < numWorkers; i++ {
		go parseWorker(productsQueue, responseQueue, workerCompleteChan)
	}

	//Listen for their exit.
	go func() {
		workersDone := 0
		for workersDone < numWorkers {
			<-workerCompleteChan
			workersDone++
		}
		close(responseQueue)
	}()

	//Launch a process to write all of the rows into the channel where
	//the workers will listen for them.
	go func() {
		for rows.Next() {
			var theRow productRow
			scanErr := rows.Scan(&theRow.productID, &theRow.sourceFile)
			if scanErr != nil {
				log.Printf("Failure reading row.")
				continue
			}

			productsQueue <- &theRow
		}
		close(productsQueue)
		log.Printf("Sql rows done.")
	}()

	//Read the responses and write them into the database.
	for corners := range responseQueue {
		updateCorners(updateStmt, corners)
	}

	log.Printf("Done")
}

func updateCorners(stmt *sql.Stmt, corners *productCorners) {
	product := corners.product
	_, err := stmt.Exec(corners.productID,
		product.ULRow, product.ULCol,
		product.URRow, product.URCol,
		product.LLRow, product.LLCol,
		product.LRRow, product.LRCol,
	)
	if err != nil {
		log.Printf("Error updating corner values.")
	}
}

func parseWorker(productsChan chan *productRow, responseChan chan *productCorners, completeChan chan bool) {
	for row := range productsChan {
		data, err := ioutil.ReadFile(row.sourceFile)
		if err != nil {
			log.Printf("Error reading source document %s.", row.sourceFile)
			continue
		}

		downstream, err := sidd.ParseDownstreamReprocessing(data)
		if err != nil {
			log.Printf("Error parsing source document %s.", row.sourceFile)
			continue
		}

		responseChan <- &productCorners{
			productID: row.productID,
			product:   db.ProductRecordFromDownstream(row.productID, row.sourceFile, time.Now().UTC(), downstream),
		}
	}
	completeChan <- true
	log.Printf("Worker exited.")
}
