package scheduling

// SlotRestrictions mirrors the access flags a doctor can put on a slot.
// MinTier is empty when the slot has no minimum compliance requirement.
type SlotRestrictions struct {
	PriorityOnly bool
	UrgentOnly   bool
	MinTier      ComplianceTier
}

// CanAccessSlot checks whether a patient may take a restricted slot.
// Returns false with a human-readable reason on the first failing rule.
func CanAccessSlot(category MedicalCategory, tier ComplianceTier, restrictions SlotRestrictions) (bool, string) {
	if restrictions.MinTier != "" {
		if tierRank[tier] < tierRank[restrictions.MinTier] {
			return false, "slot requires " + string(restrictions.MinTier) + " compliance tier"
		}
	}
	if restrictions.PriorityOnly {
		policy, ok := tierPolicies[tier]
		if !ok || !policy.PriorityAccess {
			return false, "slot reserved for high-compliance patients"
		}
	}
	if restrictions.UrgentOnly {
		if category != CategoryCritical && category != CategoryHighRisk {
			return false, "slot reserved for urgent medical cases"
		}
	}
	return true, ""
}
