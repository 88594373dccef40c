package scheduler

import (
	"strings"
	"time"
	_ "time/tzdata"

	"switchyard.app/platform/internal/model"
)

// stateZones holds the dominant zone of each US state and Canadian province.
// States split across zones use the zone most of their population lives in.
var stateZones = map[string]string{
	"AL": "America/Chicago", "AK": "America/Anchorage", "AZ": "America/Phoenix",
	"AR": "America/Chicago", "CA": "America/Los_Angeles", "CO": "America/Denver",
	"CT": "America/New_York", "DE": "America/New_York", "DC": "America/New_York",
	"FL": "America/New_York", "GA": "America/New_York", "HI": "Pacific/Honolulu",
	"ID": "America/Boise", "IL": "America/Chicago", "IN": "America/Indiana/Indianapolis",
	"IA": "America/Chicago", "KS": "America/Chicago", "KY": "America/New_York",
	"LA": "America/Chicago", "ME": "America/New_York", "MD": "America/New_York",
	"MA": "America/New_York", "MI": "America/Detroit", "MN": "America/Chicago",
	"MS": "America/Chicago", "MO": "America/Chicago", "MT": "America/Denver",
	"NE": "America/Chicago", "NV": "America/Los_Angeles", "NH": "America/New_York",
	"NJ": "America/New_York", "NM": "America/Denver", "NY": "America/New_York",
	"NC": "America/New_York", "ND": "America/Chicago", "OH": "America/New_York",
	"OK": "America/Chicago", "OR": "America/Los_Angeles", "PA": "America/New_York",
	"RI": "America/New_York", "SC": "America/New_York", "SD": "America/Chicago",
	"TN": "America/Chicago", "TX": "America/Chicago", "UT": "America/Denver",
	"VT": "America/New_York", "VA": "America/New_York", "WA": "America/Los_Angeles",
	"WV": "America/New_York", "WI": "America/Chicago", "WY": "America/Denver",
	"PR": "America/Puerto_Rico",

	"AB": "America/Edmonton", "BC": "America/Vancouver", "MB": "America/Winnipeg",
	"NB": "America/Moncton", "NL": "America/St_Johns", "NS": "America/Halifax",
	"NT": "America/Yellowknife", "NU": "America/Iqaluit", "ON": "America/Toronto",
	"PE": "America/Halifax", "QC": "America/Toronto", "SK": "America/Regina",
	"YT": "America/Whitehorse",
}

// stateNames maps full state names so free-text imports resolve too.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR", "california": "CA",
	"colorado": "CO", "connecticut": "CT", "delaware": "DE", "district of columbia": "DC",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY", "louisiana": "LA",
	"maine": "ME", "maryland": "MD", "massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK", "oregon": "OR",
	"pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT", "virginia": "VA",
	"washington": "WA", "west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
	"puerto rico": "PR", "alberta": "AB", "british columbia": "BC", "manitoba": "MB",
	"new brunswick": "NB", "newfoundland and labrador": "NL", "nova scotia": "NS",
	"ontario": "ON", "prince edward island": "PE", "quebec": "QC", "saskatchewan": "SK",
}

// areaCodes lists NANP area codes per state or province.
var areaCodes = map[string]string{
	"AL": "205 251 256 334 659 938",
	"AK": "907",
	"AZ": "480 520 602 623 928",
	"AR": "479 501 870",
	"CA": "209 213 279 310 323 341 350 408 415 424 442 510 530 559 562 619 626 628 650 657 661 669 707 714 747 760 805 818 820 831 840 858 909 916 925 949 951",
	"CO": "303 719 720 970 983",
	"CT": "203 475 860 959",
	"DE": "302",
	"DC": "202 771",
	"FL": "239 305 321 352 386 407 448 561 656 689 727 754 772 786 813 850 863 904 941 954",
	"GA": "229 404 470 478 678 706 762 770 912 943",
	"HI": "808",
	"ID": "208 986",
	"IL": "217 224 309 312 331 447 464 618 630 708 730 773 779 815 847 872",
	"IN": "219 260 317 463 574 765 812 930",
	"IA": "319 515 563 641 712",
	"KS": "316 620 785 913",
	"KY": "270 364 502 606 859",
	"LA": "225 318 337 504 985",
	"ME": "207",
	"MD": "227 240 301 410 443 667",
	"MA": "339 351 413 508 617 774 781 857 978",
	"MI": "231 248 269 313 517 586 616 679 734 810 906 947 989",
	"MN": "218 320 507 612 651 763 952",
	"MS": "228 601 662 769",
	"MO": "314 417 557 573 636 660 816",
	"MT": "406",
	"NE": "308 402 531",
	"NV": "702 725 775",
	"NH": "603",
	"NJ": "201 551 609 640 732 848 856 862 908 973",
	"NM": "505 575",
	"NY": "212 315 332 347 363 516 518 585 607 631 646 680 716 718 838 845 914 917 929 934",
	"NC": "252 336 472 704 743 828 910 919 980 984",
	"ND": "701",
	"OH": "216 220 234 326 330 380 419 440 513 567 614 740 937",
	"OK": "405 539 572 580 918",
	"OR": "458 503 541 971",
	"PA": "215 223 267 272 412 445 484 570 582 610 717 724 814 835 878",
	"RI": "401",
	"SC": "803 839 843 854 864",
	"SD": "605",
	"TN": "423 615 629 731 865 901 931",
	"TX": "210 214 254 281 325 346 361 409 430 432 469 512 682 713 726 737 806 817 830 832 903 915 936 940 945 956 972 979",
	"UT": "385 435 801",
	"VT": "802",
	"VA": "276 434 540 571 703 757 804 826 948",
	"WA": "206 253 360 425 509 564",
	"WV": "304 681",
	"WI": "262 274 414 534 608 715 920",
	"WY": "307",
	"PR": "787 939",
	"AB": "368 403 587 780 825",
	"BC": "236 250 604 672 778",
	"MB": "204 431",
	"NB": "428 506",
	"NL": "709",
	"NS": "782 902",
	"ON": "226 249 289 343 365 416 437 519 548 613 647 705 742 753 807 905",
	"QC": "263 354 367 418 438 450 468 514 579 581 819 873",
	"SK": "306 639",
	"YT": "867",
}

var areaCodeState = func() map[string]string {
	m := make(map[string]string, 400)
	for state, codes := range areaCodes {
		for _, code := range strings.Fields(codes) {
			m[code] = state
		}
	}
	return m
}()

// ResolveTimezone picks the contact's zone: an explicit IANA name, then the
// state or province, then the North American area code of the phone number.
// Contacts that match none of these fall back to fallback.
func ResolveTimezone(c *model.Contact, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if c.Timezone != nil && *c.Timezone != "" {
		if loc, err := time.LoadLocation(*c.Timezone); err == nil {
			return loc
		}
	}
	if c.State != nil {
		if loc := zoneForState(*c.State); loc != nil {
			return loc
		}
	}
	if c.Phone != nil {
		if state, ok := StateForPhone(*c.Phone); ok {
			if loc := zoneForState(state); loc != nil {
				return loc
			}
		}
	}
	return fallback
}

// StateForPhone maps a +1 number's area code to its state or province.
func StateForPhone(phone string) (string, bool) {
	if !strings.HasPrefix(phone, "+1") || len(phone) != 12 {
		return "", false
	}
	state, ok := areaCodeState[phone[2:5]]
	return state, ok
}

func zoneForState(state string) *time.Location {
	key := strings.ToUpper(strings.TrimSpace(state))
	if code, ok := stateNames[strings.ToLower(strings.TrimSpace(state))]; ok {
		key = code
	}
	name, ok := stateZones[key]
	if !ok {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil
	}
	return loc
}
