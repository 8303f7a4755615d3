package franchise

var nicknames = []string{
	"Pilgrims", "Colonels", "Wanderers", "Bisons", "Blues", "Browns", "Grays", "Maroons",
	"Quakers", "Spiders", "Stars", "Eclipse", "Mutuals", "Athletics", "Alleghenys", "Beaneaters",
	"Bridegrooms", "Orioles", "Senators", "Superbas", "Giants", "Pirates", "Reds", "Statesmen",
	"Haymakers", "Red Stockings", "Unions", "Gothams", "Hoosiers", "Cowboys", "Rustlers", "Doves",
}

var givenNames = []string{
	"Abner", "Amos", "Bert", "Buck", "Cap", "Cy", "Dutch", "Ed", "Elmer", "Fred", "Hank", "Honus",
	"Jake", "Jim", "Joe", "Kid", "Lefty", "Mike", "Nap", "Ollie", "Pete", "Red", "Sam", "Tris",
	"Walt", "Wee", "Zack",
}

var surnames = []string{
	"Anson", "Baker", "Brouthers", "Chance", "Collins", "Connor", "Crawford", "Delahanty", "Evers",
	"Flick", "Glasscock", "Hamilton", "Jennings", "Keeler", "Kelly", "Lajoie", "McGraw", "Nichols",
	"O'Rourke", "Radbourn", "Rusie", "Spalding", "Thompson", "Waddell", "Ward", "Young",
}
