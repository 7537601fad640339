package tasks

import (
	"regexp"

	"github.com/dmitrijs2005/weekplanner/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// scope limits a query to one owner and one side of the trash.
func scope(owner primitive.ObjectID, deleted bool) bson.M {
	return bson.M{"owner_id": owner, "deleted": deleted}
}

// listFilter builds the filter for one of the list views. today is the
// caller's date, YYYY-MM-DD; ISO strings compare in calendar order.
func listFilter(owner primitive.ObjectID, q models.ListQuery) bson.M {
	f := scope(owner, false)
	switch q.Kind {
	case models.FilterUpcoming:
		f["due_date"] = bson.M{"$gt": q.Today}
	case models.FilterToday:
		f["due_date"] = q.Today
	case models.FilterTag:
		f["tag"] = q.Tag
	}
	return f
}

// overdueFilter skips tasks without a due date.
func overdueFilter(owner primitive.ObjectID, today string) bson.M {
	f := scope(owner, false)
	f["due_date"] = bson.M{"$gt": "", "$lt": today}
	return f
}

// searchFilter matches text literally and case-insensitively in title or
// description, and tag exactly. Blank inputs are left out.
func searchFilter(owner primitive.ObjectID, q models.SearchQuery) bson.M {
	f := scope(owner, false)
	if q.Text != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Text), Options: "i"}
		f["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}
	if q.Tag != "" {
		f["tag"] = q.Tag
	}
	return f
}

func tagFilter(owner primitive.ObjectID) bson.M {
	f := scope(owner, false)
	f["tag"] = bson.M{"$exists": true, "$ne": ""}
	return f
}
