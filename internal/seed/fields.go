package seed

import (
	"fmt"

	"ipara-seeder/internal/catalog"
	"ipara-seeder/internal/geo"
)

var firstNames = []string{
	"Juan", "Pedro", "Miguel", "Jose", "Antonio", "Ricardo", "Eduardo", "Francisco",
	"Roberto", "Manuel", "Danilo", "Rodrigo", "Ernesto", "Fernando", "Andres",
	"Maria", "Rosa", "Ana", "Luisa", "Elena", "Josefa", "Margarita", "Teresita",
	"Juana", "Rosario", "Corazon", "Gloria", "Lourdes", "Natividad", "Remedios",
}

var lastNames = []string{
	"Garcia", "Santos", "Reyes", "Cruz", "Bautista", "Gonzales", "Ramos", "Aquino",
	"Diaz", "Castro", "Mendoza", "Torres", "Flores", "Villanueva", "Fernandez",
	"Morales", "Perez", "Ramirez", "Hernandez", "Pascual", "Delos Santos", "Tolentino",
	"Valdez", "Gutierrez", "Navarro", "Domingo", "Salazar", "Del Rosario", "Mercado",
}

var statuses = []string{"Available", "En Route", "Full", "On Break"}

func pick(rng geo.Rand, xs []string) string { return xs[rng.IntN(len(xs))] }

func PersonName(rng geo.Rand) string {
	first := pick(rng, firstNames)
	last := pick(rng, lastNames)
	return first + " " + last
}

func PlateNumber(rng geo.Rand, puvType string) string {
	prefix := "PUV"
	switch puvType {
	case catalog.Bus:
		prefix = "BUS"
	case catalog.Multicab:
		prefix = "MCB"
	case catalog.Motorela:
		prefix = "MTR"
	}
	return fmt.Sprintf("%s-%d", prefix, 100+rng.IntN(900))
}

// SpeedMps is roughly 10-40 km/h.
func SpeedMps(rng geo.Rand) float64 { return 2.8 + rng.Float64()*8.3 }

// Rating is 3.0-5.0 with one decimal, kept as text like the app expects.
func Rating(rng geo.Rand) string { return fmt.Sprintf("%.1f", 3.0+rng.Float64()*2.0) }

func MaxCapacity(puvType string) int {
	switch puvType {
	case catalog.Bus:
		return 50
	case catalog.Multicab:
		return 12
	case catalog.Motorela:
		return 8
	default:
		return 10
	}
}

// Capacity renders "<passengers>/<max>".
func Capacity(rng geo.Rand, puvType string) string {
	limit := MaxCapacity(puvType)
	return fmt.Sprintf("%d/%d", rng.IntN(limit+1), limit)
}

func Status(rng geo.Rand) string { return pick(rng, statuses) }

// ETAMinutes is 5-30.
func ETAMinutes(rng geo.Rand) int { return 5 + rng.IntN(26) }

func PhotoURL(rng geo.Rand) string {
	gender := "men"
	if rng.Float64() > 0.5 {
		gender = "women"
	}
	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, rng.IntN(70)+1)
}
