package handlers

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/padraicbc/heatwave/models"
)

func TestSummarizeBest(t *testing.T) {
	Convey("Summarising the rows at the maximum", t, func() {
		Convey("No rows give the empty card", func() {
			So(summarizeBest(nil, true), ShouldResemble, models.BestScore{Score: 0, Subtitle: "- Heat"})
		})

		Convey("A single holder is named with the heat", func() {
			got := summarizeBest([]scoreCandidate{{HeatNo: "7", Athlete: "Justyna Sniady", Score: 9.1}}, false)
			So(got, ShouldResemble, models.BestScore{Score: 9.1, Subtitle: "Justyna Sniady - Heat 7"})
		})

		Convey("Lower rows are ignored", func() {
			got := summarizeBest([]scoreCandidate{
				{HeatNo: "1", Athlete: "A", Score: 4},
				{HeatNo: "2", Athlete: "B", Score: 6},
			}, false)
			So(got.Subtitle, ShouldEqual, "B - Heat 2")
			So(got.IsMultiple, ShouldBeFalse)
		})

		Convey("A tie reads Multiple", func() {
			got := summarizeBest([]scoreCandidate{
				{HeatNo: "12a", Athlete: "A", Score: 18.5},
				{HeatNo: "14b", Athlete: "B", Score: 18.5},
			}, false)
			So(got, ShouldResemble, models.BestScore{Score: 18.5, Subtitle: "Multiple", IsMultiple: true})
		})

		Convey("Jump cards describe the move", func() {
			single := summarizeBest([]scoreCandidate{{HeatNo: "3", Athlete: "A", Score: 8, Type: "Backloop"}}, true)
			So(single.Description, ShouldEqual, "Backloop")

			sameMove := summarizeBest([]scoreCandidate{
				{HeatNo: "3", Athlete: "A", Score: 8, Type: "Backloop"},
				{HeatNo: "4", Athlete: "B", Score: 8, Type: "Backloop"},
			}, true)
			So(sameMove.Description, ShouldEqual, "Backloop")

			mixed := summarizeBest([]scoreCandidate{
				{HeatNo: "3", Athlete: "A", Score: 8, Type: "Backloop"},
				{HeatNo: "4", Athlete: "B", Score: 8, Type: "Pushloop"},
			}, true)
			So(mixed.Description, ShouldBeEmpty)
			So(mixed.IsMultiple, ShouldBeTrue)
		})
	})
}

func TestFilterDefaults(t *testing.T) {
	Convey("Filter defaults", t, func() {
		d := Defaults{EventID: 374, Gender: "Men"}

		Convey("Fill only what is missing", func() {
			So(Filter{}.WithDefaults(d), ShouldResemble, Filter{EventID: 374, Gender: "Men"})
			So(Filter{EventID: 380}.WithDefaults(d), ShouldResemble, Filter{EventID: 380, Gender: "Men"})
			So(Filter{Gender: "Women"}.WithDefaults(d), ShouldResemble, Filter{EventID: 374, Gender: "Women"})
		})
	})
}
