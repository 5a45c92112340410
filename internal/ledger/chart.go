package ledger

// ChartEntry is one row of the starter chart of accounts.
type ChartEntry struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Nature Nature `json:"nature"`
}

// StarterChart is a minimal plan de cuentas for a trading company, seeded on
// demand. Real charts usually come in through the Excel importer; this one
// covers the five classes the statements read (1 assets, 2 liabilities,
// 3 equity, 4 revenue, 5 expenses, 6 cost of sales).
var StarterChart = []ChartEntry{
	{Code: "1", Name: "Activo", Type: "Activo", Nature: NatureDebit},
	{Code: "1.1", Name: "Activo Corriente", Type: "Activo", Nature: NatureDebit},
	{Code: "1.1.01", Name: "Caja", Type: "Activo", Nature: NatureDebit},
	{Code: "1.1.02", Name: "Bancos", Type: "Activo", Nature: NatureDebit},
	{Code: "1.1.03", Name: "Cuentas por Cobrar", Type: "Activo", Nature: NatureDebit},
	{Code: "1.1.04", Name: "Inventario de Mercaderías", Type: "Activo", Nature: NatureDebit},
	{Code: "1.2", Name: "Activo No Corriente", Type: "Activo", Nature: NatureDebit},
	{Code: "1.2.01", Name: "Muebles y Enseres", Type: "Activo", Nature: NatureDebit},

	{Code: "2", Name: "Pasivo", Type: "Pasivo", Nature: NatureCredit},
	{Code: "2.1", Name: "Pasivo Corriente", Type: "Pasivo", Nature: NatureCredit},
	{Code: "2.1.01", Name: "Cuentas por Pagar", Type: "Pasivo", Nature: NatureCredit},
	{Code: "2.2", Name: "Préstamos Bancarios", Type: "Pasivo", Nature: NatureCredit},

	{Code: "3", Name: "Patrimonio", Type: "Patrimonio", Nature: NatureCredit},
	{Code: "3.1", Name: "Capital Social", Type: "Patrimonio", Nature: NatureCredit},
	{Code: "3.2", Name: "Resultados Acumulados", Type: "Patrimonio", Nature: NatureCredit},

	{Code: "4", Name: "Ingresos", Type: "Ingreso", Nature: NatureCredit},
	{Code: "4.1", Name: "Ventas", Type: "Ingreso", Nature: NatureCredit},

	{Code: "5", Name: "Gastos", Type: "Gasto", Nature: NatureDebit},
	{Code: "5.1", Name: "Gastos Administrativos", Type: "Gasto", Nature: NatureDebit},
	{Code: "5.2", Name: "Gastos de Ventas", Type: "Gasto", Nature: NatureDebit},

	{Code: "6", Name: "Costos", Type: "Costo", Nature: NatureDebit},
	{Code: "6.1", Name: "Costo de Ventas", Type: "Costo", Nature: NatureDebit},
}

// LookupChartEntry finds a starter chart entry by code.
func LookupChartEntry(code string) *ChartEntry {
	for i := range StarterChart {
		if StarterChart[i].Code == code {
			return &StarterChart[i]
		}
	}
	return nil
}
