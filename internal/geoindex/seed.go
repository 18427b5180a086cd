package geoindex

import "pastoral-bknd/internal/models"

// SeedParishes is the built-in dataset loaded at startup so the server is
// usable without a remote parish API. It doubles as the test fixture base.
func SeedParishes() []models.Parish {
	return []models.Parish{
		{
			ID:       "ba-001",
			Name:     "Parroquia San José",
			Pastor:   "Pbro. Juan Pérez",
			Address:  "Av. Siempre Viva 123, CABA",
			Country:  "Argentina",
			Province: "Buenos Aires",
			City:     "CABA",
			Location: models.Coordinate{Lat: -34.6037, Lon: -58.3816},
			Contact:  models.Contact{Phone: "+54 11 4000-0000", Email: "contacto@sanjose.org"},
			Services: []models.ParishService{
				{
					Type: "misa",
					Name: "Misa dominical",
					Schedule: []models.ScheduleEntry{
						{Day: "sunday", Times: []models.TimeRange{{Start: "09:00"}, {Start: "11:00"}, {Start: "19:00"}}},
						{Day: "monday", Times: []models.TimeRange{{Start: "19:00"}}},
						{Day: "friday", Times: []models.TimeRange{{Start: "19:00"}}},
					},
				},
				{
					Type: "bautismo",
					Schedule: []models.ScheduleEntry{
						{Day: "saturday", Times: []models.TimeRange{{Start: "10:00"}, {Start: "11:30"}}},
					},
				},
				{
					Type: "confesiones",
					Schedule: []models.ScheduleEntry{
						{Day: "friday", Times: []models.TimeRange{{Start: "18:00", End: "19:00"}}},
						{Day: "saturday", Times: []models.TimeRange{{Start: "17:00", End: "18:30"}}},
					},
				},
			},
			Links:     &models.Links{Website: "https://sanjose.org"},
			Languages: []string{"Español", "Inglés"},
		},
		{
			ID:       "ba-002",
			Name:     "Parroquia Nuestra Señora de Luján",
			Pastor:   "Pbro. Carlos González",
			Address:  "Calle Falsa 456, Luján",
			Country:  "Argentina",
			Province: "Buenos Aires",
			City:     "Luján",
			Location: models.Coordinate{Lat: -34.5708, Lon: -59.1156},
			Contact:  models.Contact{Phone: "+54 11 4000-1111", Email: "info@nslujan.org.ar"},
			Services: []models.ParishService{
				{
					Type: "misa",
					Schedule: []models.ScheduleEntry{
						{Day: "sunday", Times: []models.TimeRange{{Start: "08:00"}, {Start: "10:00"}, {Start: "12:00"}, {Start: "18:00"}}},
						{Day: "saturday", Times: []models.TimeRange{{Start: "18:00"}}},
					},
				},
				{
					Type: "matrimonio",
					Schedule: []models.ScheduleEntry{
						{Day: "saturday", Times: []models.TimeRange{{Start: "12:00"}, {Start: "17:00"}}},
					},
				},
				{
					Type: "caritas",
					Schedule: []models.ScheduleEntry{
						{Day: "monday", Times: []models.TimeRange{{Start: "09:00", End: "12:00"}}},
						{Day: "wednesday", Times: []models.TimeRange{{Start: "14:00", End: "17:00"}}},
					},
				},
			},
			Links:     &models.Links{Website: "https://nslujan.org.ar", Facebook: "https://facebook.com/nslujan"},
			Languages: []string{"Español"},
		},
		{
			ID:       "cor-001",
			Name:     "Parroquia San Francisco",
			Pastor:   "Pbro. Miguel Rodríguez",
			Address:  "Av. Colón 789, Córdoba Capital",
			Country:  "Argentina",
			Province: "Córdoba",
			City:     "Córdoba Capital",
			Location: models.Coordinate{Lat: -31.4201, Lon: -64.1888},
			Contact:  models.Contact{Phone: "+54 351 400-2222", Email: "parroquia@sanfrancisco.org"},
			Services: []models.ParishService{
				{
					Type: "misa",
					Schedule: []models.ScheduleEntry{
						{Day: "sunday", Times: []models.TimeRange{{Start: "09:00"}, {Start: "11:00"}, {Start: "19:30"}}},
						{Day: "tuesday", Times: []models.TimeRange{{Start: "19:00"}}},
					},
				},
				{
					Type: "retiros",
					Schedule: []models.ScheduleEntry{
						{Day: "saturday", Times: []models.TimeRange{{Start: "09:00", End: "17:00"}}},
					},
				},
			},
			Languages: []string{"Español", "Italiano"},
		},
		{
			ID:       "men-001",
			Name:     "Parroquia Santa Rosa de Lima",
			Pastor:   "Pbro. Diego Fernández",
			Address:  "San Martín 321, Mendoza",
			Country:  "Argentina",
			Province: "Mendoza",
			City:     "Mendoza Capital",
			Location: models.Coordinate{Lat: -32.8895, Lon: -68.8458},
			Contact:  models.Contact{Phone: "+54 261 400-3333", Email: "santarosa@mendoza.org"},
			Services: []models.ParishService{
				{
					Type: "misa",
					Schedule: []models.ScheduleEntry{
						{Day: "sunday", Times: []models.TimeRange{{Start: "10:00"}, {Start: "19:00"}}},
					},
				},
				{
					Type: "catequesis",
					Schedule: []models.ScheduleEntry{
						{Day: "saturday", Times: []models.TimeRange{{Start: "15:00", End: "17:00"}}},
					},
				},
			},
		},
		{
			ID:       "sf-001",
			Name:     "Parroquia del Sagrado Corazón",
			Pastor:   "Pbro. Alberto Ruiz",
			Address:  "Bv. Oroño 1500, Rosario",
			Country:  "Argentina",
			Province: "Santa Fe",
			City:     "Rosario",
			Location: models.Coordinate{Lat: -32.9468, Lon: -60.6393},
			Contact:  models.Contact{Phone: "+54 341 400-4444", Email: "sagradocorazon@rosario.org"},
			Services: []models.ParishService{
				{
					Type: "misa",
					Schedule: []models.ScheduleEntry{
						{Day: "sunday", Times: []models.TimeRange{{Start: "09:00"}, {Start: "11:00"}}},
						{Day: "wednesday", Times: []models.TimeRange{{Start: "20:00"}}},
					},
				},
				{
					Type: "bautismo",
					Schedule: []models.ScheduleEntry{
						{Day: "sunday", Times: []models.TimeRange{{Start: "12:30"}}},
					},
				},
			},
		},
		{
			ID:       "uy-001",
			Name:     "Iglesia Santa Lucía",
			Pastor:   "Pbro. Raúl Techera",
			Address:  "18 de Julio 1200, Montevideo",
			Country:  "Uruguay",
			Province: "Montevideo",
			City:     "Montevideo",
			Location: models.Coordinate{Lat: -34.9011, Lon: -56.1645},
			Contact:  models.Contact{Phone: "+598 2 400-5555", Email: "santalucia@iglesia.uy"},
			Services: []models.ParishService{
				{
					Type: "misa",
					Schedule: []models.ScheduleEntry{
						{Day: "sunday", Times: []models.TimeRange{{Start: "10:00"}, {Start: "18:00"}}},
					},
				},
			},
		},
		{
			ID:       "py-001",
			Name:     "Parroquia Santa Lucía de Asunción",
			Pastor:   "Pbro. Osvaldo Benítez",
			Address:  "Av. Mariscal López 900, Asunción",
			Country:  "Paraguay",
			Province: "Asunción",
			City:     "Asunción",
			Location: models.Coordinate{Lat: -25.2825, Lon: -57.5573},
			Contact:  models.Contact{Phone: "+595 21 400-666", Email: "santalucia@asuncion.py"},
			Services: []models.ParishService{
				{
					Type: "misa",
					Schedule: []models.ScheduleEntry{
						{Day: "sunday", Times: []models.TimeRange{{Start: "08:00"}, {Start: "11:00"}}},
					},
				},
				{
					Type: "confesiones",
					Schedule: []models.ScheduleEntry{
						{Day: "saturday", Times: []models.TimeRange{{Start: "16:00", End: "18:00"}}},
					},
				},
			},
		},
		{
			ID:       "cl-001",
			Name:     "Parroquia El Sagrario",
			Pastor:   "Pbro. Andrés Valdivia",
			Address:  "Plaza de Armas s/n, Santiago",
			Country:  "Chile",
			Province: "Región Metropolitana",
			City:     "Santiago",
			Location: models.Coordinate{Lat: -33.4378, Lon: -70.6505},
			Contact:  models.Contact{Phone: "+56 2 400-7777", Email: "sagrario@santiago.cl"},
			// Schedule not yet published by the diocese.
			Services: []models.ParishService{
				{Type: "misa"},
			},
		},
	}
}
