package output

// DefaultAssumptions lists the modelling conventions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Years are 365.25 days; elapsed time is measured to the millisecond",
	"Growth without a payout schedule compounds annually at the declared rate",
	"Debt-like categories (Bonds, FD/RD, P2P Lending, Savings) quote simple annual yields",
	"Tax withheld is summed over the fiscal year starting April 1",
	"Liquid assets are valued at cost, locked assets at current value",
	"Budget targets follow 50/30/20 for needs, wants and savings",
}
