package parser_test

import "strings"

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

// x01Leg is a complete 501 leg won by the home side with a two-dart finish.
var x01Leg = []string{
	"Player\tScore\tRemaining\tRnd\tRemaining\tScore\tPlayer",
	"Tony Massimiani\t36\t465\t1\t473\t28\tDerek Fess",
	"Tony Massimiani\t100\t365\t2\t413\t60\tDerek Fess",
	"140\tTony Massimiani\t140\t225\t3\t368\t45\tDerek Fess",
	"180\tTony Massimiani\t180\t45\t4\t283\t85\tDerek Fess",
	"Tony Massimiani\tX\t45\t5\t183\t100\tDerek Fess\t100",
	"Tony Massimiani\t5\t40\t6\t100\t83\tDerek Fess",
	"DO (2)\tTony Massimiani\t40\t0\t7",
	"3 Dart Avg\t85.93\t60.14",
}

// cricketLeg finishes 403 to 388 with a summary trailer.
var cricketLeg = []string{
	"Player\tMarks\tPoints\tRnd\tPoints\tMarks\tPlayer",
	"Tony Marino\tT20\tStart\t1\tStart\tS19\tDerek Fess",
	"Tony Marino\tT20, S19x2\t60\t2\t19\tT19, D18\tDerek Fess",
	"5M\tTony Marino\tT18, D17\t60\t3\t37\tS18x2\tDerek Fess",
	"Tony Marino\tSB, S16x2\t403\t4\t388\t∅\tDerek Fess",
	"MPR\t4.00\t2.00",
}
