package knowledge

// LatLon is a bare coordinate pair used for static lookups, distinct from
// pkg/memory.Coords which additionally tracks provenance.
type LatLon struct {
	Lat float64
	Lon float64
}

// StaticPincodeCoordinates are well-known postal codes for major Indian
// cities, consulted before any external directory call.
var StaticPincodeCoordinates = map[string]LatLon{
	"411001": {18.5204, 73.8567}, // Pune
	"400001": {19.0760, 72.8777}, // Mumbai
	"440001": {21.1458, 79.0882}, // Nagpur
	"141001": {30.9010, 75.8573}, // Ludhiana
	"160001": {30.7333, 76.7794}, // Chandigarh
	"143001": {31.6340, 74.8723}, // Amritsar
	"302001": {26.9124, 75.7873}, // Jaipur
	"342001": {26.2389, 73.0243}, // Jodhpur
	"313001": {24.5854, 73.7125}, // Udaipur
	"756002": {21.4934, 86.9135}, // Balasore
	"751001": {20.2961, 85.8245}, // Bhubaneswar
	"753001": {20.4625, 85.8830}, // Cuttack
	"560001": {12.9716, 77.5946}, // Bangalore
	"580001": {15.3647, 75.1240}, // Hubli
	"570001": {12.2958, 76.6394}, // Mysore
	"600001": {13.0827, 80.2707}, // Chennai
	"641001": {11.0168, 76.9558}, // Coimbatore
	"625001": {9.9252, 78.1198},  // Madurai
	"700001": {22.5726, 88.3639}, // Kolkata
	"713101": {23.5204, 87.3119}, // Durgapur
	"226001": {26.8467, 80.9462}, // Lucknow
	"208001": {26.4499, 80.3319}, // Kanpur
	"221001": {25.3176, 82.9739}, // Varanasi
	"380001": {23.0225, 72.5714}, // Ahmedabad
	"395001": {21.1702, 72.8311}, // Surat
	"390001": {22.3072, 73.1812}, // Vadodara
	"462001": {23.2599, 77.4126}, // Bhopal
	"452001": {22.7196, 75.8577}, // Indore
	"695001": {8.5241, 76.9366},  // Thiruvananthapuram
	"682001": {9.9312, 76.2673},  // Kochi
}

// StaticStateCoordinates are state-center coordinates used as the
// penultimate fallback before the country-wide default.
var StaticStateCoordinates = map[string]LatLon{
	"punjab":         {31.1471, 75.3412},
	"maharashtra":    {19.7515, 75.7139},
	"rajasthan":      {27.0238, 74.2179},
	"kerala":         {10.8505, 76.2711},
	"west_bengal":    {22.9868, 87.8550},
	"uttar_pradesh":  {26.8467, 80.9462},
	"tamil_nadu":     {11.1271, 78.6569},
	"karnataka":      {15.3173, 75.7139},
	"madhya_pradesh": {22.9734, 78.6569},
	"gujarat":        {22.2587, 71.1924},
	"odisha":         {20.9517, 85.0985},
	"bihar":          {25.0961, 85.3131},
	"andhra_pradesh": {15.9129, 79.7400},
	"telangana":      {18.1124, 79.0193},
	"haryana":        {29.0588, 76.0856},
}

// DefaultCoordinates is the center-of-India fallback.
var DefaultCoordinates = LatLon{20.5937, 78.9629}
