package model

// Inputs is the canonical "inputs to the system" bundle: the three tables a
// return model is constructed from. A changed input means a new Inputs value.
type Inputs struct {
	Assumptions *AssumptionsTable
	Cashflow    *CashflowSchedule
	Scenario    *ScenarioGrid
}
