// Command kinlead ingests genealogical source records into a deduplicated
// person pool and reports citizenship-eligibility leads.
//
//	kinlead ingest naturalization_1906.json census_1920.json
//	kinlead leads --min-score 60
//	kinlead review list
//	kinlead serve
package main
