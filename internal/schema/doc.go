// Package schema classifies mixable documents into scalar, list and map
// schema nodes and merges override documents into them.
//
// # Classification
//
// The bottom document of an inheritance chain is parsed into the canonical
// tree. Each element is offered to the scalar, list and map classifiers in
// that order:
//
//	<Configuration xmlns:mx="https://github.com/jamescourtney/mixable">
//	  <mx:Metadata />
//	  <A>4</A>                        <!-- scalar, inferred int -->
//	  <List>                          <!-- list, repeated tag -->
//	    <Item>1</Item>
//	    <Item>2</Item>
//	  </List>
//	  <Servers>                       <!-- list, explicit template -->
//	    <mx:ListItemTemplate>
//	      <Server>
//	        <Host>h</Host>
//	        <Port mx:Flags="Optional">80</Port>
//	      </Server>
//	    </mx:ListItemTemplate>
//	  </Servers>
//	</Configuration>
//
// # Merging
//
// Override documents are first matched against the tree (Subset for maps,
// always Strict for list items) and then merged in place. Modifiers follow a
// fixed lifecycle: None may become Abstract, Abstract may become anything,
// Final never changes again. Abstract nodes left after the leaf document is
// merged are errors.
//
// # Attribute policy
//
// Which metadata attributes are legal depends on the document's depth in the
// chain; see Validator.
package schema
