package bracket

// SeasonSlot picks a team by regular-season group number and finishing
// position (1-based).
type SeasonSlot struct {
	Group    int
	Position int
}

// GroupSlot picks a team by group name and rank (1-based) within it.
type GroupSlot struct {
	Group    string
	Position int
}

// QuarterDef lists a quarterfinal group's four slots in seed order.
type QuarterDef struct {
	Name  string
	Slots []SeasonSlot
}

// StageDef lists a later-stage group's four slots in seed order.
type StageDef struct {
	Name  string
	Slots []GroupSlot
}

// QuarterTable maps the 16 regular-season groups onto quarterfinal groups
// A-H: the two group winners of a mirrored pair plus two runners-up.
var QuarterTable = []QuarterDef{
	{"A", []SeasonSlot{{1, 1}, {16, 1}, {8, 2}, {9, 2}}},
	{"B", []SeasonSlot{{2, 1}, {15, 1}, {7, 2}, {10, 2}}},
	{"C", []SeasonSlot{{3, 1}, {14, 1}, {6, 2}, {11, 2}}},
	{"D", []SeasonSlot{{4, 1}, {13, 1}, {5, 2}, {12, 2}}},
	{"E", []SeasonSlot{{5, 1}, {12, 1}, {4, 2}, {13, 2}}},
	{"F", []SeasonSlot{{6, 1}, {11, 1}, {3, 2}, {14, 2}}},
	{"G", []SeasonSlot{{7, 1}, {10, 1}, {2, 2}, {15, 2}}},
	{"H", []SeasonSlot{{8, 1}, {9, 1}, {1, 2}, {16, 2}}},
}

// SemiTable maps quarterfinal ranks onto semifinal groups A-D.
var SemiTable = []StageDef{
	{"A", []GroupSlot{{"A", 1}, {"E", 1}, {"D", 2}, {"H", 2}}},
	{"B", []GroupSlot{{"B", 1}, {"F", 1}, {"C", 2}, {"G", 2}}},
	{"C", []GroupSlot{{"C", 1}, {"G", 1}, {"B", 2}, {"F", 2}}},
	{"D", []GroupSlot{{"D", 1}, {"H", 1}, {"A", 2}, {"E", 2}}},
}

// FinalTable maps semifinal ranks onto final groups 1 and 2.
var FinalTable = []StageDef{
	{"1", []GroupSlot{{"A", 1}, {"C", 1}, {"B", 2}, {"D", 2}}},
	{"2", []GroupSlot{{"B", 1}, {"D", 1}, {"A", 2}, {"C", 2}}},
}

// OneLigSemiTable crosses the two regular-season groups A and B into
// semifinal groups I and II.
var OneLigSemiTable = []StageDef{
	{"I", []GroupSlot{{"A", 1}, {"B", 4}, {"A", 3}, {"B", 2}}},
	{"II", []GroupSlot{{"B", 1}, {"A", 4}, {"B", 3}, {"A", 2}}},
}

// OneLigFinalTable sends the top two of each semifinal group to the final.
var OneLigFinalTable = []StageDef{
	{"Final", []GroupSlot{{"I", 1}, {"I", 2}, {"II", 1}, {"II", 2}}},
}
