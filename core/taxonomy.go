package core

import "github.com/chingu-voyage/heartbeat/schema"

// GHEvents is the event taxonomy. An event's position in this table is its
// ordinal: the storage index for accumulated weights and the column
// position in rendered output. The table must keep a stable order across a
// program run; deprecated and Passive entries are listed for completeness
// but never score.
var GHEvents = []schema.EventTypeDefinition{
	{EventName: "CommitCommentEvent", Title: "Commit Comment", Category: schema.ActivityManaging},
	{EventName: "CreateEvent", Title: "Create Repo/Branch/Tag", Category: schema.ActivityManaging},
	{EventName: "DeleteEvent", Title: "Delete Branch or Tag", Category: schema.ActivityManaging},
	{EventName: "DeploymentEvent", Title: "Deployment", Category: schema.ActivityPassive},
	{EventName: "DeploymentStatusEvent", Title: "Deployment Status", Category: schema.ActivityPassive},
	{EventName: "DownloadEvent", Deprecated: true, Category: schema.ActivityPassive},
	{EventName: "FollowEvent", Deprecated: true, Category: schema.ActivityPassive},
	{EventName: "ForkEvent", Title: "Fork Repo", Category: schema.ActivityPassive},
	{EventName: "ForkApplyEvent", Deprecated: true, Category: schema.ActivityPassive},
	{EventName: "GistEvent", Deprecated: true, Category: schema.ActivityPassive},
	{EventName: "GollumEvent", Title: "Create/Update Wiki", Category: schema.ActivityManaging},
	{EventName: "InstallationEvent", Title: "Install/Uninstall App", Category: schema.ActivityManaging},
	{EventName: "InstallationRepositoriesEvent", Title: "Add/Remove Repo from Installation", Category: schema.ActivityManaging},
	{EventName: "IssueCommentEvent", Title: "Create/Edit/Delete Issue Comment", Category: schema.ActivityManaging},
	{EventName: "IssuesEvent", Title: "Add/Update Issue", Category: schema.ActivityDeveloping},
	{EventName: "LabelEvent", Title: "Add/Update/Delete Repo Label", Category: schema.ActivityManaging},
	{EventName: "MarketplacePurchaseEvent", Title: "Marketplace Activity", Category: schema.ActivityManaging},
	{EventName: "MemberEvent", Title: "Collaborator Activity", Category: schema.ActivityPassive},
	{EventName: "MembershipEvent", Title: "Add/Remove User from Team", Category: schema.ActivityPassive},
	{EventName: "MilestoneEvent", Title: "Milestone Activity", Category: schema.ActivityManaging},
	{EventName: "OrganizationEvent", Title: "Organization Activity", Category: schema.ActivityPassive},
	{EventName: "OrgBlockEvent", Title: "Block/Unblock User from Org", Category: schema.ActivityPassive},
	{EventName: "PageBuildEvent", Title: "Build GH Pages Site", Category: schema.ActivityPublishing},
	{EventName: "ProjectCardEvent", Title: "Project Card Activity", Category: schema.ActivityPassive},
	{EventName: "ProjectColumnEvent", Title: "Project Column Activity", Category: schema.ActivityPassive},
	{EventName: "ProjectEvent", Title: "Project Activity", Category: schema.ActivityPassive},
	{EventName: "PublicEvent", Title: "Make Repo Public", Category: schema.ActivityPassive},
	{EventName: "PullRequestEvent", Title: "Pull Request", Category: schema.ActivityPublishing},
	{EventName: "PullRequestReviewEvent", Title: "PR Review", Category: schema.ActivityDeveloping},
	{EventName: "PullRequestReviewCommentEvent", Title: "PR Review Comment", Category: schema.ActivityDeveloping},
	{EventName: "PushEvent", Title: "Push to Branch", Category: schema.ActivityPublishing},
	{EventName: "ReleaseEvent", Title: "Release Activity", Category: schema.ActivityPublishing},
	{EventName: "RepositoryEvent", Title: "Create/Manage Repo", Category: schema.ActivityPassive},
	{EventName: "StatusEvent", Title: "Change Commit Status", Category: schema.ActivityDeveloping},
	{EventName: "TeamEvent", Title: "Create/Remove Org Team", Category: schema.ActivityPassive},
	{EventName: "TeamAddEvent", Title: "Add Repo to Team", Category: schema.ActivityPassive},
	{EventName: "WatchEvent", Title: "Watch Repo", Category: schema.ActivityManaging},
}

// LookupQualifyingEvent returns the taxonomy ordinal for an event type, or
// schema.NotFound when the event does not qualify for scoring. An event
// qualifies only if its name matches a table entry that is neither
// deprecated nor Passive. The table is small, so a linear scan is fine.
func LookupQualifyingEvent(taxonomy []schema.EventTypeDefinition, eventName string) int {
	for i, def := range taxonomy {
		if def.EventName == eventName && !def.Deprecated && def.Category != schema.ActivityPassive {
			return i
		}
	}
	return schema.NotFound
}

// ResultHeadings returns the column headings for aggregated results:
// the static columns, one column per taxonomy entry, then the totals.
func ResultHeadings(taxonomy []schema.EventTypeDefinition) []string {
	headings := []string{"Tier", "Team", "Name", "Team Active", "Last Actor Activity"}
	for _, def := range taxonomy {
		headings = append(headings, def.Title)
	}
	return append(headings, "Total Score", "Percentile Rank")
}
