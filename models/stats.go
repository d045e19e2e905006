package models

// Bucket represents one category of a chart series and its record count
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardStats holds the series behind the statistics charts
type DashboardStats struct {
	Total            int      `json:"total"`
	RamosDireito     []Bucket `json:"ramos_direito"`     // top 10, horizontal bars
	RepercussaoGeral []Bucket `json:"repercussao_geral"` // donut
	ClassesProcesso  []Bucket `json:"classes_processo"`  // top 15, bars
	PorAno           []Bucket `json:"por_ano"`           // line, ascending year
}
