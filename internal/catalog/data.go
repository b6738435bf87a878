package catalog

import "github.com/kyubii/kyubii-api/internal/geo"

// NasuCenter is the reference center of the Nasu tourism area, used for
// exploration-radius checks during planning.
var NasuCenter = geo.Point{Lat: 37.058, Lon: 140.005}

// categorySpotIDs maps each category to the spots that carry it. A spot's
// category set is derived from this table exactly once, when the seed data is
// built.
var categorySpotIDs = map[Category][]int{
	CategoryGourmet:   {1, 7, 16, 18, 22, 26, 27, 30, 31},
	CategoryActivity:  {4, 6, 7, 18, 20, 22, 23, 25, 26, 28, 29},
	CategoryTourism:   {6, 7, 9, 12, 17, 18, 22, 26, 29},
	CategoryHotspring: {2, 3, 8, 12, 13, 15, 19, 21},
}

// busStopIDs marks spots that are transit waypoints rather than destinations.
var busStopIDs = map[int]bool{5: true, 11: true, 14: true, 24: true, 33: true}

type seedSpot struct {
	id     int
	name   string
	lat    float64
	lon    float64
	status SpotStatus
}

var seedSpots = []seedSpot{
	{1, "Nasu Kogen Yuai no Mori", 37.040872891296836, 140.01338438747982, StatusActive},
	{2, "Wellness Forest Nasu", 37.045356856265386, 140.02159076167842, StatusActive},
	{3, "Hotel Epinard Nasu", 37.049952783791014, 140.02380157116596, StatusActive},
	{4, "Treasure Stone Park", 37.05000305823371, 140.03100633862647, StatusActive},
	{5, "Bus Stop", 37.05472961127315, 140.03711137988955, StatusActive},
	{6, "Nasu Teddy Bear Museum", 37.049198378882735, 140.03958193005198, StatusActive},
	{7, "Rindoko Family Ranch", 37.041306554975556, 140.04703218837264, StatusActive},
	{8, "Grand Mecure Nasu", 37.04001847176965, 140.04095539289787, StatusActive},
	{9, "Nasu Stained Glass Museum", 37.065525450772306, 140.02490182697397, StatusActive},
	{10, "Tokyu Harvest Club", 37.069873701661706, 140.0228803643896, StatusSuspended},
	{11, "Bus Stop", 37.05707890880237, 140.03628597512008, StatusActive},
	{12, "Nasu Yumoto Hot Springs", 37.099302214340526, 140.00039803676512, StatusActive},
	{13, "Hotel Sun Valley Nasu", 37.087037038095865, 140.00531519298178, StatusActive},
	{14, "Bus Stop", 37.088369720300875, 140.0073461, StatusActive},
	{15, "Sansuikaku Entrance", 37.087809517807685, 140.0111625276528, StatusActive},
	{16, "Soba: Ikkenjaya", 37.08154247155476, 140.0135610820572, StatusActive},
	{17, "Seiji Fujishiro Museum of Art", 37.083090382286805, 140.00464402895898, StatusActive},
	{18, "Minamigaoka Ranch", 37.078458111949004, 140.0008749906835, StatusActive},
	{19, "Towa Pure Cottage NASU/NOZARU", 37.065382696612204, 139.96674905758303, StatusActive},
	{20, "Nasu Highland Park", 37.06541848759843, 139.9632845855609, StatusActive},
	{21, "Nasu Village", 37.05915519359856, 139.9812700990486, StatusActive},
	{22, "Seiryu no Sato", 37.06123822430164, 139.99260083377428, StatusActive},
	{23, "Nasu Safari Park", 37.059193483625016, 140.0062517108532, StatusActive},
	{24, "Bus Stop", 37.05595680718895, 139.99087850230165, StatusActive},
	{25, "Candle House Chouchou", 37.042284276658876, 140.00625369535658, StatusActive},
	{26, "Mountain Stream Park", 37.07792240897927, 139.99883542883583, StatusActive},
	{27, "Penny Lane Nasu", 37.06888532894915, 139.9999990230372, StatusActive},
	{28, "World Monkey Park", 37.035218155862, 140.04849957197902, StatusActive},
	{29, "Nasu Trick Art Pia", 37.03156195862827, 140.0359026918237, StatusActive},
	{30, "GOOD News Complex", 37.025443781161435, 140.0297962516706, StatusActive},
	{31, "Candy Castle", 37.01710771506317, 140.03043298610356, StatusActive},
	{32, "Loisir Nasu Entrance", 37.059791710961036, 140.03119901686813, StatusActive},
	{33, "Bus Stop", 37.08160624392203, 139.98126882883588, StatusActive},
}

var seedCourses = []Course{
	{
		ID:      "A",
		Name:    "Course A",
		Color:   "#EF4444",
		SpotIDs: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25},
	},
	{
		ID:      "C",
		Name:    "Course C",
		Color:   "#A855F7",
		SpotIDs: []int{1, 2, 3, 4, 9, 11, 16, 17, 18, 22, 23, 24, 25, 26, 27, 32},
	},
	{
		ID:      "D",
		Name:    "Course D",
		Color:   "#F97316",
		SpotIDs: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 24, 25},
	},
	{
		ID:      "E",
		Name:    "Course E",
		Color:   "#22C55E",
		SpotIDs: []int{1, 2, 3, 4, 5, 6, 7, 8, 28, 29, 30, 31},
	},
	{
		ID:      "F",
		Name:    "Course F",
		Color:   "#3B82F6",
		SpotIDs: []int{1, 2, 3, 4, 5, 6, 7, 8},
	},
}

// categoriesForSpot derives the immutable category set for a spot, iterating
// the fixed category order so the result is deterministic.
func categoriesForSpot(id int) []Category {
	var cats []Category
	for _, c := range Categories {
		for _, sid := range categorySpotIDs[c] {
			if sid == id {
				cats = append(cats, c)
				break
			}
		}
	}
	return cats
}

// NasuSpots builds the full seed spot list in catalog order.
func NasuSpots() []Spot {
	spots := make([]Spot, 0, len(seedSpots))
	for _, s := range seedSpots {
		spots = append(spots, Spot{
			ID:         s.id,
			Name:       s.name,
			Position:   geo.Point{Lat: s.lat, Lon: s.lon},
			Status:     s.status,
			Categories: categoriesForSpot(s.id),
			IsBusStop:  busStopIDs[s.id],
		})
	}
	return spots
}

// NasuCourses builds the seed course list in catalog order.
func NasuCourses() []Course {
	courses := make([]Course, len(seedCourses))
	copy(courses, seedCourses)
	return courses
}
