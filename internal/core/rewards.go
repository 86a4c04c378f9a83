package core

// FixedRewards is the built-in reward catalogue every household starts
// with. These are immutable seed data: they never live in the store and
// cannot be deleted. Custom rewards get IDs from the repository and are
// persisted separately.
func FixedRewards() []Reward {
	return []Reward{
		{ID: "1", Title: "La cuenta porfavor!!! 🍽️", Description: "Hoy te invito a cenar", Cost: 60},
		{ID: "2", Title: "Rey/Reina por un día 👑", Description: "Desayuno a la cama y trato real", Cost: 80},
		{ID: "3", Title: "La carta de la envidia", Description: "Intercambio de platos, tu comida tiene mejor pinta", Cost: 80},
		{ID: "4", Title: "Day off 🛌", Description: "Te libras de los quehaceres por un día", Cost: 100},
		{ID: "5", Title: "Cuponazo 🎁", Description: "Un paseo por el Ikea, ¿qué compramos?", Cost: 100},
	}
}
