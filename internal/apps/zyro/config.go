// Package zyro implements the gamified entrepreneurship app: idea roulette,
// daily challenges, quizzes, bingo, leaderboards, social sharing and
// cross-app sync.
package zyro

// pointsPerAction is the static award table. Lead events (opened_message and
// friends) come from the ZYRA funnel and carry small weights.
var pointsPerAction = map[string]int{
	"daily_challenge": 50,
	"idea_spin":       10,
	"bingo_complete":  100,
	"madlib_create":   25,
	"quiz_complete":   75,
	"social_share":    30,
	"streak_bonus":    20,
	"friend_invite":   100,
	"app_integration": 150,

	"opened_message": 1,
	"replied":        3,
	"asked_question": 5,
	"clicked_link":   7,
	"requested_info": 10,
}

// Level is a named points threshold.
type Level struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
	Badge     string `json:"badge"`
}

// levels is ordered ascending by MinPoints; the user's level is the highest
// threshold at or below their total.
var levels = []Level{
	{Name: "Wannapreneur", MinPoints: 0, Badge: "🐣"},
	{Name: "Side Hustler", MinPoints: 500, Badge: "💪"},
	{Name: "Grind Master", MinPoints: 1500, Badge: "🔥"},
	{Name: "Boss Mode", MinPoints: 3000, Badge: "👑"},
	{Name: "Empire Builder", MinPoints: 5000, Badge: "🚀"},
	{Name: "Billionaire Mindset", MinPoints: 10000, Badge: "💎"},
}

// Badge describes an earnable badge.
type Badge struct {
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

var badges = map[string]Badge{
	"streak_3":         {Name: "3-Day Streak", Emoji: "🔥", Description: "On fire!"},
	"streak_7":         {Name: "Week Warrior", Emoji: "⚡", Description: "Full week committed!"},
	"streak_30":        {Name: "Monthly Mogul", Emoji: "💫", Description: "Unstoppable!"},
	"first_spin":       {Name: "Idea Spinner", Emoji: "🎰", Description: "First spin complete"},
	"bingo_master":     {Name: "Bingo Boss", Emoji: "🎯", Description: "First bingo completed"},
	"social_butterfly": {Name: "Viral Vibes", Emoji: "🦋", Description: "10+ shares"},
	"quiz_king":        {Name: "Self-Aware CEO", Emoji: "🧠", Description: "All quizzes done"},
	"comeback_king":    {Name: "Comeback King", Emoji: "🎬", Description: "Back after a broken streak"},
	"bingo_line":       {Name: "Line Winner", Emoji: "📏", Description: "First bingo line"},
	"bingo_double":     {Name: "Double Trouble", Emoji: "✌️", Description: "Two bingo lines"},
	"bingo_legend":     {Name: "Legendary Hustler", Emoji: "🏅", Description: "Full board blackout"},
}

// streakMultiplier returns the bonus multiplier for the current streak.
func streakMultiplier(streak int) float64 {
	switch {
	case streak >= 30:
		return 2.0
	case streak >= 14:
		return 1.75
	case streak >= 7:
		return 1.5
	case streak >= 3:
		return 1.2
	default:
		return 1.0
	}
}

// Category holds the three word pools an idea is assembled from.
type Category struct {
	Name     string   `json:"name"`
	Prefix   []string `json:"prefix"`
	Business []string `json:"business"`
	Suffix   []string `json:"suffix"`
}

var categories = []Category{
	{
		Name:     "Absurd Combos",
		Prefix:   []string{"Luxury", "Budget", "Automated", "Subscription-based", "On-demand"},
		Business: []string{"Dog Walking", "Laundry Service", "Motivational Texting", "Sock Matching", "Plant Whispering"},
		Suffix:   []string{"for Billionaires", "for Introverts", "While You Sleep", "via TikTok", "with AI"},
	},
	{
		Name:     "Practical Plays",
		Prefix:   []string{"Online", "Local", "Mobile App"},
		Business: []string{"Consulting", "Coaching", "Content Creation"},
		Suffix:   []string{"for Busy Professionals", "on a Budget", "for Small Teams"},
	},
}

// Keyword tables for the heuristic idea scores. Matching is case-insensitive
// substring containment against the relevant part.
var (
	absurdPrefixes   = []string{"luxury", "ai-powered", "blockchain-based", "celebrity"}
	absurdBusinesses = []string{"dog walking", "motivational texting", "plant whispering"}
	absurdSuffixes   = []string{"for billionaires", "via tiktok", "using only emojis"}

	viablePrefixes   = []string{"online", "local", "mobile app"}
	viableBusinesses = []string{"consulting", "coaching", "content creation"}
	viableSuffixes   = []string{"for busy professionals", "on a budget"}

	viralKeywords = []string{
		"billionaire", "automated", "while you sleep", "ai-powered",
		"subscription", "luxury", "viral", "tiktok", "crypto", "nft",
	}
)

// Challenge is one daily hustle challenge.
type Challenge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Points      int    `json:"points"`
	TimeLimit   int    `json:"time_limit"`
	Category    string `json:"category"`
	Prompt      string `json:"prompt"`
}

var dailyChallenges = []Challenge{
	{ID: "pitch_office_item", Title: "Luxury Sales Pitch", Description: "Pitch your office chair as a luxury product in 30 seconds", Difficulty: "easy", Points: 50, TimeLimit: 60, Category: "Sales", Prompt: "Record yourself giving a luxury sales pitch for a random office item"},
	{ID: "trade_up", Title: "Trade Master", Description: "Trade your pen for something better (virtual or real!)", Difficulty: "medium", Points: 75, TimeLimit: 300, Category: "Negotiation", Prompt: "Screenshot your \"trade\" and share the story"},
	{ID: "elevator_pitch", Title: "Elevator Pitch", Description: "Pitch Z2B to someone in 30 seconds", Difficulty: "medium", Points: 100, TimeLimit: 30, Category: "Marketing", Prompt: "Practice your Z2B elevator pitch"},
	{ID: "find_solution", Title: "Problem Solver", Description: "Identify 3 problems at your job that could be business ideas", Difficulty: "easy", Points: 50, TimeLimit: 180, Category: "Ideas", Prompt: "What frustrates you at work? That's a business opportunity!"},
	{ID: "revenue_brainstorm", Title: "Money Maker", Description: "List 5 ways you could earn R100 this week", Difficulty: "easy", Points: 50, TimeLimit: 120, Category: "Finance", Prompt: "Get creative! Even small ideas count."},
	{ID: "network_challenge", Title: "Network Ninja", Description: "Message 3 people about their side hustles", Difficulty: "hard", Points: 150, TimeLimit: 600, Category: "Networking", Prompt: "Ask genuinely - learn from others"},
	{ID: "social_audit", Title: "Social Spy", Description: "Find 3 successful entrepreneurs on social media and analyze their content", Difficulty: "medium", Points: 75, TimeLimit: 300, Category: "Learning", Prompt: "What makes their content engaging? Take notes!"},
}

// BingoTask is one cell on the 5x5 board.
type BingoTask struct {
	Text       string `json:"text"`
	Points     int    `json:"points"`
	Difficulty string `json:"difficulty"`
	Icon       string `json:"icon"`
}

const bingoFreeSpaceIndex = 12

var bingoTasks = []BingoTask{
	{Text: "Follow Z2B on TikTok", Points: 20, Difficulty: "easy", Icon: "📱"},
	{Text: "Share ZYRO with 3 friends", Points: 50, Difficulty: "medium", Icon: "🤝"},
	{Text: "Complete a daily challenge", Points: 50, Difficulty: "easy", Icon: "✅"},
	{Text: "Spin Idea Roulette 5 times", Points: 30, Difficulty: "easy", Icon: "🎰"},
	{Text: "Post about Z2B", Points: 75, Difficulty: "medium", Icon: "📣"},

	{Text: "Earn 500 points", Points: 100, Difficulty: "hard", Icon: "💯"},
	{Text: "Try Glowie app", Points: 150, Difficulty: "medium", Icon: "📲"},
	{Text: "Create 10 MadLibs", Points: 50, Difficulty: "medium", Icon: "✍️"},
	{Text: "Take CEO/Minion Quiz", Points: 75, Difficulty: "easy", Icon: "🧠"},
	{Text: "3-day streak", Points: 100, Difficulty: "medium", Icon: "🔥"},

	{Text: "Invite a friend to ZYRO", Points: 100, Difficulty: "medium", Icon: "💌"},
	{Text: "Share on Instagram Story", Points: 50, Difficulty: "easy", Icon: "📸"},
	{Text: "⭐ FREE SPACE ⭐", Points: 0, Difficulty: "free", Icon: "⭐"},
	{Text: "Generate content with Benown", Points: 150, Difficulty: "medium", Icon: "🎨"},
	{Text: "Watch ManlaW coaching video", Points: 50, Difficulty: "easy", Icon: "🎓"},

	{Text: "Complete 5 challenges", Points: 200, Difficulty: "hard", Icon: "🏆"},
	{Text: "Reach \"Boss Mode\" level", Points: 250, Difficulty: "hard", Icon: "👑"},
	{Text: "Share to TikTok", Points: 75, Difficulty: "medium", Icon: "🎵"},
	{Text: "Try Zyra AI chat", Points: 150, Difficulty: "medium", Icon: "🤖"},
	{Text: "Earn 5 badges", Points: 200, Difficulty: "hard", Icon: "🎖️"},

	{Text: "Create viral meme", Points: 100, Difficulty: "medium", Icon: "😂"},
	{Text: "Complete full bingo row", Points: 300, Difficulty: "hard", Icon: "🎯"},
	{Text: "Use all Z2B apps", Points: 500, Difficulty: "hard", Icon: "🔗"},
	{Text: "Join Z2B community", Points: 50, Difficulty: "easy", Icon: "👥"},
	{Text: "30-day streak (ultimate!)", Points: 1000, Difficulty: "legendary", Icon: "💎"},
}

// BingoPrize is awarded once per board when its milestone is reached.
type BingoPrize struct {
	Points int    `json:"points"`
	Badge  string `json:"badge"`
	Title  string `json:"title"`
}

var bingoPrizes = map[string]BingoPrize{
	"one_line":   {Points: 150, Badge: "bingo_line", Title: "Line Winner"},
	"two_lines":  {Points: 350, Badge: "bingo_double", Title: "Double Trouble"},
	"full_bingo": {Points: 1000, Badge: "bingo_master", Title: "Bingo Boss"},
	"blackout":   {Points: 5000, Badge: "bingo_legend", Title: "Legendary Hustler"},
}

// MadlibBlank is one fill-in slot. Key matches a {key} placeholder in the
// template text; duplicate keys are filled left to right.
type MadlibBlank struct {
	Key    string `json:"key"`
	Prompt string `json:"prompt"`
}

// MadlibTemplate is a fill-in-the-blank pitch template.
type MadlibTemplate struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Template string        `json:"template"`
	Blanks   []MadlibBlank `json:"blanks"`
}

var madlibTemplates = []MadlibTemplate{
	{
		ID:       "billion_dollar_pitch",
		Title:    "Billion Dollar Pitch",
		Template: "My startup, {company_name}, is disrupting the {industry} industry by offering {adjective} {product} for {target_audience}. We're like {comparison} but for {niche}. Our secret sauce? {crazy_feature}. Investors are gonna {reaction}!",
		Blanks: []MadlibBlank{
			{Key: "company_name", Prompt: "Cool company name"},
			{Key: "industry", Prompt: "Industry (e.g., food, tech)"},
			{Key: "adjective", Prompt: "Adjective (e.g., revolutionary)"},
			{Key: "product", Prompt: "Product/service"},
			{Key: "target_audience", Prompt: "Target customers"},
			{Key: "comparison", Prompt: "Famous company"},
			{Key: "niche", Prompt: "Specific niche"},
			{Key: "crazy_feature", Prompt: "Unique feature"},
			{Key: "reaction", Prompt: "Reaction verb"},
		},
	},
	{
		ID:       "linkedin_flex",
		Title:    "LinkedIn Flex",
		Template: "Excited to announce that {company_name} just raised ${amount} in {funding_type} funding! 🚀 Our mission is to {mission} through {method}. Special shoutout to {person} for believing in us. {hashtag} {hashtag} #Blessed",
		Blanks: []MadlibBlank{
			{Key: "company_name", Prompt: "Your startup name"},
			{Key: "amount", Prompt: "Dollar amount"},
			{Key: "funding_type", Prompt: "Type of funding"},
			{Key: "mission", Prompt: "Your mission"},
			{Key: "method", Prompt: "How you do it"},
			{Key: "person", Prompt: "Someone to thank"},
			{Key: "hashtag", Prompt: "Trendy hashtag"},
			{Key: "hashtag", Prompt: "Another trendy hashtag"},
		},
	},
	{
		ID:       "side_hustle_story",
		Title:    "Side Hustle Story",
		Template: "Started {business} while working as a {job}. First month? Made R{amount}. People said I was {insult}, but now I'm {achievement}. My secret? {advice}. Who's ready to quit their {job} and chase {dream}?",
		Blanks: []MadlibBlank{
			{Key: "business", Prompt: "Side hustle"},
			{Key: "job", Prompt: "Your day job"},
			{Key: "amount", Prompt: "Money amount"},
			{Key: "insult", Prompt: "What doubters said"},
			{Key: "achievement", Prompt: "Current status"},
			{Key: "advice", Prompt: "One tip"},
			{Key: "job", Prompt: "Your day job (again)"},
			{Key: "dream", Prompt: "Ultimate goal"},
		},
	},
	{
		ID:       "origin_story",
		Title:    "Entrepreneur Origin Story",
		Template: "I used to be a {occupation} making R{salary}/month. One day, I had a crazy idea: {idea}. Everyone thought I was {reaction}. Fast forward {timeframe}, and now {outcome}. If I can do it, so can you! 💪",
		Blanks: []MadlibBlank{
			{Key: "occupation", Prompt: "Old job"},
			{Key: "salary", Prompt: "Old salary"},
			{Key: "idea", Prompt: "Your crazy idea"},
			{Key: "reaction", Prompt: "How people reacted"},
			{Key: "timeframe", Prompt: "Time period"},
			{Key: "outcome", Prompt: "Current result"},
		},
	},
}

// funnyWords feed the humor score. Matching is case-insensitive substring
// containment against the rendered pitch.
var funnyWords = []string{
	"billion", "millionaire", "yacht", "lamborghini", "diamond",
	"unicorn", "rocket", "ninja", "wizard", "galaxy", "quantum",
	"turbo", "mega", "ultra", "supreme", "legendary", "epic",
}

// madlibSuggestions power auto-fill, keyed by blank key.
var madlibSuggestions = map[string][]string{
	"company_name":    {"Hustle Inc", "Grind Labs", "UnicornWorks", "Empire Co", "TurboVentures"},
	"industry":        {"food", "tech", "fitness", "pet care", "crypto"},
	"adjective":       {"Automated", "Luxury", "Viral", "AI-Powered", "Revolutionary", "Disruptive", "Epic", "Legendary", "Mind-Blowing", "Insane"},
	"product":         {"App", "Course", "Book", "Platform", "System", "Framework", "Blueprint", "Masterclass", "Program", "Academy"},
	"target_audience": {"Customers", "Followers", "Investors", "Millionaires", "Entrepreneurs"},
	"comparison":      {"Uber", "Airbnb", "Netflix", "Amazon", "Tesla"},
	"niche":           {"introverts", "side hustlers", "dog lovers", "night owls", "busy parents"},
	"crazy_feature":   {"AI that hustles while you sleep", "blockchain-verified motivation", "a built-in hype squad"},
	"reaction":        {"Dominate", "Conquer", "Crush", "Disrupt", "Transform", "Revolutionize", "Innovate", "Scale", "Launch", "Build"},
	"amount":          {"1000", "10,000", "100,000", "1,000,000", "10 million", "100 million", "1 billion"},
	"funding_type":    {"seed", "Series A", "pre-seed", "angel", "crowdfunded"},
	"mission":         {"empower every hustler", "democratize entrepreneurship", "automate the grind"},
	"method":          {"Scaling", "Growing", "Building", "Creating", "Launching", "Disrupting", "Innovating", "Transforming", "Hustling", "Grinding"},
	"person":          {"Elon Musk", "Warren Buffett", "Oprah", "Mark Zuckerberg", "Bill Gates", "Richard Branson", "Jeff Bezos", "Your Future Self", "A Billionaire Mentor"},
	"business":        {"SaaS Company", "E-commerce Store", "Coaching Business", "Agency", "Startup", "Consulting Firm", "Online Course", "Membership Site"},
	"job":             {"barista", "accountant", "teacher", "cashier", "intern"},
	"insult":          {"crazy", "delusional", "dreaming", "wasting my time"},
	"achievement":     {"a full-time founder", "debt-free", "my own boss", "booked out for months"},
	"advice":          {"start before you're ready", "consistency beats talent", "sell first, build later"},
	"dream":           {"financial freedom", "a billion-dollar exit", "the laptop lifestyle"},
	"occupation":      {"barista", "accountant", "teacher", "cashier", "intern"},
	"salary":          {"3,000", "5,000", "8,000", "12,000"},
	"idea":            {"luxury dog walking for billionaires", "motivational texting while you sleep", "an app that gamifies the grind"},
	"timeframe":       {"6 months", "1 year", "2 years", "90 days"},
	"outcome":         {"I run a legendary empire", "the business runs itself", "I mentor other hustlers"},
}

var defaultSuggestions = []string{"Amazing", "Incredible", "Awesome"}

// QuizOption is one selectable answer.
type QuizOption struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
	Trait  string `json:"trait"`
}

// QuizQuestion is one question with its options.
type QuizQuestion struct {
	Question string       `json:"question"`
	Options  []QuizOption `json:"options"`
}

// ResultBucket maps an inclusive score range to a quiz outcome. Buckets are
// kept in declaration order; the middle bucket doubles as the no-match
// fallback.
type ResultBucket struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	MinScore    int    `json:"min_score"`
	MaxScore    int    `json:"max_score"`
	Description string `json:"description"`
	Advice      string `json:"advice"`
	NextStep    string `json:"next_step"`
}

// QuizTemplate is a full quiz definition.
type QuizTemplate struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Questions   []QuizQuestion `json:"questions"`
	Results     []ResultBucket `json:"results"`
}

var quizTemplates = []QuizTemplate{
	{
		ID:          "ceo_or_minion",
		Title:       "CEO or Minion?",
		Description: "Find out if you're ready to boss up or still stuck in the 9-to-5 grind!",
		Questions: []QuizQuestion{
			{
				Question: "It's Monday morning. Your first thought?",
				Options: []QuizOption{
					{Text: "Ugh, another week...", Points: 0, Trait: "minion"},
					{Text: "Let's crush these goals!", Points: 3, Trait: "ceo"},
					{Text: "Coffee first, then we'll see", Points: 1, Trait: "hustler"},
				},
			},
			{
				Question: "Your boss asks you to work overtime for free. You:",
				Options: []QuizOption{
					{Text: "Say yes immediately (I need this job)", Points: 0, Trait: "minion"},
					{Text: "Negotiate for comp time or pay", Points: 2, Trait: "hustler"},
					{Text: "Politely decline - my time is valuable", Points: 3, Trait: "ceo"},
				},
			},
			{
				Question: "You have R5,000 extra. What do you do?",
				Options: []QuizOption{
					{Text: "Savings account (safe and boring)", Points: 1, Trait: "minion"},
					{Text: "Invest in my side hustle", Points: 3, Trait: "ceo"},
					{Text: "Splurge on something fun, save the rest", Points: 2, Trait: "hustler"},
				},
			},
			{
				Question: "Someone criticizes your business idea. You:",
				Options: []QuizOption{
					{Text: "Give up immediately", Points: 0, Trait: "minion"},
					{Text: "Prove them wrong by executing it", Points: 3, Trait: "ceo"},
					{Text: "Consider their feedback, then decide", Points: 2, Trait: "hustler"},
				},
			},
			{
				Question: "Your dream Friday night is:",
				Options: []QuizOption{
					{Text: "Netflix and chill (literally just chill)", Points: 1, Trait: "minion"},
					{Text: "Working on my side hustle", Points: 3, Trait: "ceo"},
					{Text: "Hanging with friends, but thinking about business", Points: 2, Trait: "hustler"},
				},
			},
			{
				Question: "When you hear \"passive income,\" you think:",
				Options: []QuizOption{
					{Text: "Sounds like a scam", Points: 0, Trait: "minion"},
					{Text: "That's the dream! How do I start?", Points: 3, Trait: "ceo"},
					{Text: "Interested but skeptical", Points: 1, Trait: "hustler"},
				},
			},
			{
				Question: "Your current relationship with risk:",
				Options: []QuizOption{
					{Text: "Avoid at all costs", Points: 0, Trait: "minion"},
					{Text: "Calculated risks only", Points: 2, Trait: "hustler"},
					{Text: "Fortune favors the bold!", Points: 3, Trait: "ceo"},
				},
			},
			{
				Question: "How do you feel about your current job?",
				Options: []QuizOption{
					{Text: "It pays the bills", Points: 1, Trait: "minion"},
					{Text: "It's a stepping stone to my empire", Points: 3, Trait: "ceo"},
					{Text: "It's okay, but I want more", Points: 2, Trait: "hustler"},
				},
			},
		},
		Results: []ResultBucket{
			{
				Key: "minion", Title: "😬 Minion Mindset", MinScore: 0, MaxScore: 8,
				Description: "You're stuck in employee mode! But don't worry - ZYRO is here to help you break free. Start with small daily challenges and build that CEO confidence!",
				Advice:      "Try our Daily Hustle Challenges to shift your mindset!",
				NextStep:    "Start a 7-day ZYRO challenge streak",
			},
			{
				Key: "hustler", Title: "💪 Side Hustler", MinScore: 9, MaxScore: 16,
				Description: "You've got the hunger! You're thinking like an entrepreneur but still need that extra push. Keep grinding - you're on the right track!",
				Advice:      "Check out Z2B tools to automate your hustle!",
				NextStep:    "Try Glowie or Benown to scale your efforts",
			},
			{
				Key: "ceo", Title: "👑 CEO Material", MinScore: 17, MaxScore: 24,
				Description: "You're READY! You think like a boss, act like a boss, and you're about to BE a boss. The only thing holding you back is taking action. Let's go!",
				Advice:      "Join Z2B and start building your empire TODAY!",
				NextStep:    "Explore all Z2B apps and build your system",
			},
		},
	},
}

// Platform share limits and tuning.
type platformConfig struct {
	HashtagLimit int
	Tone         string
}

var platforms = map[string]platformConfig{
	"instagram": {HashtagLimit: 10},
	"tiktok":    {HashtagLimit: 5, Tone: "energetic"},
	"twitter":   {HashtagLimit: 3},
	"whatsapp":  {HashtagLimit: 10},
	"facebook":  {HashtagLimit: 10},
	"linkedin":  {HashtagLimit: 5, Tone: "professional"},
}

const (
	twitterCharLimit  = 280
	twitterTruncateAt = 250
)

var shareHooks = []string{
	"🚀 Check out what I just did on ZYRO!",
	"Drop a 🔥 if you relate!",
	"Tag someone who needs to see this!",
	"Rate this pitch 1-10 in comments 👇",
	"Should I actually build this? 😂",
}

var socialProofs = []string{
	"✅ Join 10,000+ hustlers",
	"🌟 Rated 5-stars by entrepreneurs",
	"🚀 Featured in Z2B community",
	"💪 Trusted by aspiring CEOs",
	"🎯 #1 entrepreneur gamification app",
}

const shareBaseURL = "https://zero2billionaires.com/zyro"
