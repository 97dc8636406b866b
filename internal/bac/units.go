package bac

// Unit conversion constants for ethanol mass.
const (
	ouncesToMilliliters  = 29.5735
	ethanolDensityGramML = 0.789
	poundsToGrams        = 453.592
)

// EthanolGrams converts a serving volume and strength to grams of pure
// ethanol. Pure and total; inputs are validated at drink construction.
func EthanolGrams(volumeOz, alcoholPercent float64) float64 {
	return volumeOz * ouncesToMilliliters * (alcoholPercent / 100.0) * ethanolDensityGramML
}

// TotalEthanolGrams sums the ethanol mass of every drink in the log.
func TotalEthanolGrams(drinks []Drink) float64 {
	var total float64
	for _, d := range drinks {
		total += EthanolGrams(d.VolumeOz, d.AlcoholPercent)
	}
	return total
}
