// pkg/appx/known.go
package appx

// Known lists the preinstalled packages offered for removal.
var Known = []Definition{
	{Name: "Candy Crush Saga", Category: CategoryGames, PackageName: "king.com.CandyCrushSaga", Description: "Pre-installed mobile game"},
	{Name: "Candy Crush Friends", Category: CategoryGames, PackageName: "king.com.CandyCrushFriends", Description: "Pre-installed mobile game"},
	{Name: "Bubble Witch 3 Saga", Category: CategoryGames, PackageName: "king.com.BubbleWitch3Saga", Description: "Pre-installed mobile game"},
	{Name: "Farm Heroes Saga", Category: CategoryGames, PackageName: "king.com.FarmHeroesSaga", Description: "Pre-installed mobile game"},
	{Name: "March of Empires", Category: CategoryGames, PackageName: "A278AB0D.MarchofEmpires", Description: "Pre-installed strategy game"},
	{Name: "Microsoft Solitaire", Category: CategoryGames, PackageName: "Microsoft.MicrosoftSolitaireCollection", Description: "Card game with ads"},
	{Name: "Minecraft (Trial)", Category: CategoryGames, PackageName: "Microsoft.MinecraftEducationEdition", Description: "Trial/education edition"},

	{Name: "Disney+", Category: CategorySocial, PackageName: "Disney.37853FC22B2CE", Description: "Streaming app promotion"},
	{Name: "Spotify (Pre-installed)", Category: CategorySocial, PackageName: "SpotifyAB.SpotifyMusic", Description: "Pre-installed promotion"},
	{Name: "TikTok", Category: CategorySocial, PackageName: "BytedancePte.Ltd.TikTok", Description: "Pre-installed social media"},
	{Name: "Instagram", Category: CategorySocial, PackageName: "Facebook.Instagram", Description: "Pre-installed social media"},
	{Name: "Facebook", Category: CategorySocial, PackageName: "Facebook.Facebook", Description: "Pre-installed social media"},
	{Name: "Messenger", Category: CategorySocial, PackageName: "Facebook.Messenger", Description: "Pre-installed messenger"},
	{Name: "Netflix", Category: CategorySocial, PackageName: "4DF9E0F8.Netflix", Description: "Streaming promotion"},
	{Name: "Amazon Prime Video", Category: CategorySocial, PackageName: "AmazonVideo.PrimeVideo", Description: "Streaming promotion"},
	{Name: "Twitter", Category: CategorySocial, PackageName: "9E2F88E3.Twitter", Description: "Pre-installed social media"},
	{Name: "LinkedIn", Category: CategorySocial, PackageName: "Microsoft.LinkedIn", Description: "Pre-installed professional network"},
	{Name: "WhatsApp", Category: CategorySocial, PackageName: "5319275A.WhatsAppDesktop", Description: "Pre-installed messenger"},

	{Name: "News", Category: CategoryMicrosoft, PackageName: "Microsoft.BingNews", Description: "Bing News aggregator"},
	{Name: "Weather", Category: CategoryMicrosoft, PackageName: "Microsoft.BingWeather", Description: "Bing Weather widget"},
	{Name: "Finance", Category: CategoryMicrosoft, PackageName: "Microsoft.BingFinance", Description: "Bing Finance widget"},
	{Name: "Sports", Category: CategoryMicrosoft, PackageName: "Microsoft.BingSports", Description: "Bing Sports widget"},
	{Name: "Maps", Category: CategoryMicrosoft, PackageName: "Microsoft.WindowsMaps", Description: "Windows Maps (rarely used)"},
	{Name: "People", Category: CategoryMicrosoft, PackageName: "Microsoft.People", Description: "Contacts app"},
	{Name: "Groove Music", Category: CategoryMicrosoft, PackageName: "Microsoft.ZuneMusic", Description: "Legacy music player"},
	{Name: "Movies & TV", Category: CategoryMicrosoft, PackageName: "Microsoft.ZuneVideo", Description: "Legacy video player"},
	{Name: "Mail and Calendar", Category: CategoryMicrosoft, PackageName: "microsoft.windowscommunicationsapps", Description: "Legacy mail app"},
	{Name: "Mixed Reality Portal", Category: CategoryMicrosoft, PackageName: "Microsoft.MixedReality.Portal", Description: "VR headset portal"},
	{Name: "3D Viewer", Category: CategoryMicrosoft, PackageName: "Microsoft.Microsoft3DViewer", Description: "3D model viewer"},
	{Name: "Paint 3D", Category: CategoryMicrosoft, PackageName: "Microsoft.MSPaint", Description: "Legacy 3D paint app"},
	{Name: "OneNote (Win10)", Category: CategoryMicrosoft, PackageName: "Microsoft.Office.OneNote", Description: "Legacy OneNote"},
	{Name: "Skype", Category: CategoryMicrosoft, PackageName: "Microsoft.SkypeApp", Description: "Legacy Skype"},
	{Name: "Clipchamp", Category: CategoryMicrosoft, PackageName: "Clipchamp.Clipchamp", Description: "Video editor promotion"},
	{Name: "Power Automate", Category: CategoryMicrosoft, PackageName: "Microsoft.PowerAutomateDesktop", Description: "RPA tool"},
	{Name: "Microsoft Family", Category: CategoryMicrosoft, PackageName: "MicrosoftCorporationII.MicrosoftFamily", Description: "Parental control app"},

	{Name: "Xbox Game Bar", Category: CategoryPromotions, PackageName: "Microsoft.XboxGamingOverlay", Description: "Gaming overlay"},
	{Name: "Xbox Identity Provider", Category: CategoryPromotions, PackageName: "Microsoft.XboxIdentityProvider", Description: "Xbox login service"},
	{Name: "Xbox Console Companion", Category: CategoryPromotions, PackageName: "Microsoft.XboxApp", Description: "Legacy Xbox companion"},
	{Name: "Feedback Hub", Category: CategoryPromotions, PackageName: "Microsoft.WindowsFeedbackHub", Description: "Microsoft feedback tool"},
	{Name: "Get Help", Category: CategoryPromotions, PackageName: "Microsoft.GetHelp", Description: "Microsoft help app"},
	{Name: "Tips", Category: CategoryPromotions, PackageName: "Microsoft.Getstarted", Description: "Windows tips and tricks"},
	{Name: "Phone Link", Category: CategoryPromotions, PackageName: "Microsoft.YourPhone", Description: "Phone-to-PC linking app"},
}
