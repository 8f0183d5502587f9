package pricing

// Attribution says whether a line item's cost applies to every finished
// unit or once per production batch.
type Attribution string

const (
	PerUnit  Attribution = "per_unit"
	PerBatch Attribution = "per_batch"
)

// QuantityMode selects how a material line expresses consumption.
type QuantityMode string

const (
	// ExactQuantity: a fixed amount of material yields UnitsProduced
	// finished products.
	ExactQuantity QuantityMode = "exact"
	// PercentageOfStock: the line consumes a percentage of a linked
	// inventory item's current stock level.
	PercentageOfStock QuantityMode = "percentage"
)

// Method identifies which of the four pricing inputs drives the price.
type Method string

const (
	MethodMarkup Method = "markup"
	MethodPrice  Method = "price"
	MethodProfit Method = "profit"
	MethodMargin Method = "margin"
)

// MaterialLine is one material consumed by a product.
//
// In ExactQuantity mode, Quantity of the material yields UnitsProduced
// finished units. In PercentageOfStock mode, Percentage of StockLevel is
// consumed either per finished unit or once per batch, depending on
// Attribution; UnitsProduced does not apply when the percentage is
// consumed per batch (it is treated as 1).
type MaterialLine struct {
	Name          string
	Unit          string
	PricePerUnit  float64
	Mode          QuantityMode
	Quantity      float64
	UnitsProduced float64
	Percentage    float64
	StockLevel    float64
	Attribution   Attribution
}

// LaborLine is one labor activity priced by time and hourly rate.
type LaborLine struct {
	Activity    string
	TimeMinutes float64
	HourlyRate  float64
	Attribution Attribution
}

// OtherCostLine is a miscellaneous cost such as shipping or fees.
type OtherCostLine struct {
	Item        string
	Quantity    float64
	UnitCost    float64
	Attribution Attribution
}

// Result is the coherent price/profit/margin/markup quadruple. Margin is
// a percentage of price, markup a percentage of cost, profit an absolute
// amount per unit.
type Result struct {
	Price  float64
	Profit float64
	Margin float64
	Markup float64
}

// Inputs carries everything needed for a full product recalculation.
type Inputs struct {
	BatchSize  int
	Materials  []MaterialLine
	Labor      []LaborLine
	OtherCosts []OtherCostLine
	Method     Method
	Value      float64
}

// Summary is the full recalculation output persisted by the caller.
type Summary struct {
	UnitCost        float64
	Price           float64
	Profit          float64
	Margin          float64
	Markup          float64
	CostsPercentage float64
}

// ComputeUnitCost returns the total cost of producing one unit of the
// product. It never panics: non-finite inputs count as zero, and a batch
// size below 1 is floored to 1 so per-batch lines cannot divide by zero.
// No rounding is applied; rounding is a display concern of the caller.
func ComputeUnitCost(batchSize int, materials []MaterialLine, labor []LaborLine, otherCosts []OtherCostLine) float64 {
	batch := float64(batchSize)
	if batch < 1 {
		batch = 1
	}

	total := 0.0
	for _, m := range materials {
		total += materialUnitCost(m, batch)
	}
	for _, l := range labor {
		total += splitByAttribution((safe(l.TimeMinutes)/60.0)*safe(l.HourlyRate), l.Attribution, batch)
	}
	for _, o := range otherCosts {
		total += splitByAttribution(safe(o.Quantity)*safe(o.UnitCost), o.Attribution, batch)
	}
	return total
}

func materialUnitCost(m MaterialLine, batch float64) float64 {
	price := safe(m.PricePerUnit)

	if m.Mode == PercentageOfStock {
		// A line not yet linked to tracked inventory has StockLevel 0
		// and therefore costs nothing.
		quantity := safe(m.StockLevel) * safe(m.Percentage) / 100.0
		if m.Attribution == PerBatch {
			// The percentage is consumed once per batch; a declared
			// multi-unit yield does not apply here.
			return quantity * price / batch
		}
		return quantity * price / unitsProducedOrOne(m.UnitsProduced)
	}

	if m.Attribution == PerBatch {
		// The exact quantity covers the whole batch.
		return safe(m.Quantity) * price / batch
	}
	return safe(m.Quantity) * price / unitsProducedOrOne(m.UnitsProduced)
}

func unitsProducedOrOne(units float64) float64 {
	units = safe(units)
	if units < 1 {
		return 1
	}
	return units
}

func splitByAttribution(rawCost float64, attribution Attribution, batch float64) float64 {
	if attribution == PerBatch {
		return rawCost / batch
	}
	return rawCost
}

// Resolve derives the price from the driving method and value, then
// derives profit, margin and markup uniformly from price and unit cost.
// The uniform second step is what makes the four methods interchangeable:
// switching methods on an already-priced product reproduces the same
// price, because each forward formula is the algebraic inverse of the
// corresponding definition.
func Resolve(method Method, drivingValue, unitCost float64) Result {
	value := safe(drivingValue)
	cost := safe(unitCost)

	var price float64
	switch method {
	case MethodPrice:
		price = value
	case MethodProfit:
		price = cost + value
	case MethodMargin:
		if value >= 100 {
			// A margin of 100% or more has no finite price.
			price = 0
		} else {
			price = cost / (1 - value/100.0)
		}
	default: // MethodMarkup
		price = cost * (1 + value/100.0)
	}

	profit := price - cost

	margin := 0.0
	if price > 0 {
		margin = profit / price * 100.0
	}
	markup := 0.0
	if cost > 0 {
		markup = profit / cost * 100.0
	}

	return Result{Price: price, Profit: profit, Margin: margin, Markup: markup}
}

// Summarize runs a full from-scratch recalculation: aggregate the unit
// cost, resolve the quadruple, and report what share of the price the
// cost represents.
func Summarize(in Inputs) Summary {
	unitCost := ComputeUnitCost(in.BatchSize, in.Materials, in.Labor, in.OtherCosts)
	resolved := Resolve(in.Method, in.Value, unitCost)

	costsPercentage := 0.0
	if resolved.Price > 0 {
		costsPercentage = unitCost / resolved.Price * 100.0
	}

	return Summary{
		UnitCost:        unitCost,
		Price:           resolved.Price,
		Profit:          resolved.Profit,
		Margin:          resolved.Margin,
		Markup:          resolved.Markup,
		CostsPercentage: costsPercentage,
	}
}
