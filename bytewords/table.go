package bytewords

// words is the fixed 256-entry byte<->word table (component B). The table
// is a bijection by construction: byte i's word always has a first letter
// drawn from a 16-letter row alphabet and a last letter from a 16-letter
// column alphabet, so no two entries can share a (first, last) pair — the
// property the minimal encoding's 2-letter lookup depends on.
var words = [256]string{
	"abaa", "aceb", "adic", "afod", "ague", "ajaf", "akeg", "alih",
	"amoi", "anuj", "apak", "arel", "asim", "aton", "awuo", "abap",
	"bfea", "bgib", "bjoc", "bkud", "blae", "bmef", "bnig", "bpoh",
	"brui", "bsaj", "btek", "bwil", "bbom", "bcun", "bdao", "bfep",
	"ckia", "clob", "cmuc", "cnad", "cpee", "crif", "csog", "ctuh",
	"cwai", "cbej", "ccik", "cdol", "cfum", "cgan", "cjeo", "ckip",
	"dnoa", "dpub", "drac", "dsed", "dtie", "dwof", "dbug", "dcah",
	"ddei", "dfij", "dgok", "djul", "dkam", "dlen", "dmio", "dnop",
	"esua", "etab", "ewec", "ebid", "ecoe", "eduf", "efag", "egeh",
	"ejii", "ekoj", "eluk", "emal", "enem", "epin", "eroo", "esup",
	"fbaa", "fceb", "fdic", "ffod", "fgue", "fjaf", "fkeg", "flih",
	"fmoi", "fnuj", "fpak", "frel", "fsim", "fton", "fwuo", "fbap",
	"gfea", "ggib", "gjoc", "gkud", "glae", "gmef", "gnig", "gpoh",
	"grui", "gsaj", "gtek", "gwil", "gbom", "gcun", "gdao", "gfep",
	"hkia", "hlob", "hmuc", "hnad", "hpee", "hrif", "hsog", "htuh",
	"hwai", "hbej", "hcik", "hdol", "hfum", "hgan", "hjeo", "hkip",
	"inoa", "ipub", "irac", "ised", "itie", "iwof", "ibug", "icah",
	"idei", "ifij", "igok", "ijul", "ikam", "ilen", "imio", "inop",
	"jsua", "jtab", "jwec", "jbid", "jcoe", "jduf", "jfag", "jgeh",
	"jjii", "jkoj", "jluk", "jmal", "jnem", "jpin", "jroo", "jsup",
	"kbaa", "kceb", "kdic", "kfod", "kgue", "kjaf", "kkeg", "klih",
	"kmoi", "knuj", "kpak", "krel", "ksim", "kton", "kwuo", "kbap",
	"lfea", "lgib", "ljoc", "lkud", "llae", "lmef", "lnig", "lpoh",
	"lrui", "lsaj", "ltek", "lwil", "lbom", "lcun", "ldao", "lfep",
	"mkia", "mlob", "mmuc", "mnad", "mpee", "mrif", "msog", "mtuh",
	"mwai", "mbej", "mcik", "mdol", "mfum", "mgan", "mjeo", "mkip",
	"nnoa", "npub", "nrac", "nsed", "ntie", "nwof", "nbug", "ncah",
	"ndei", "nfij", "ngok", "njul", "nkam", "nlen", "nmio", "nnop",
	"osua", "otab", "owec", "obid", "ocoe", "oduf", "ofag", "ogeh",
	"ojii", "okoj", "oluk", "omal", "onem", "opin", "oroo", "osup",
	"pbaa", "pceb", "pdic", "pfod", "pgue", "pjaf", "pkeg", "plih",
	"pmoi", "pnuj", "ppak", "prel", "psim", "pton", "pwuo", "pbap",
}

// minimalIndex maps a (first, last) letter pair to its byte value, built
// once from words at package init.
var minimalIndex map[[2]byte]byte

// wordIndex maps a full 4-letter word to its byte value.
var wordIndex map[string]byte

func init() {
	minimalIndex = make(map[[2]byte]byte, 256)
	wordIndex = make(map[string]byte, 256)
	for i, w := range words {
		b := byte(i)
		key := [2]byte{w[0], w[3]}
		if _, dup := minimalIndex[key]; dup {
			panic("bytewords: table is not a valid minimal-style bijection")
		}
		minimalIndex[key] = b
		wordIndex[w] = b
	}
}
